// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package games

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"laptudirm.com/x/djinn/internal/util"
)

// ID uniquely identifies a game instance inside a Registry.
type ID int

func (id ID) String() string {
	return "#" + strconv.Itoa(int(id))
}

// Entry is a game registered with a Registry.
type Entry struct {
	ID   ID
	Key  string // short name used to select the game
	Game Game
}

var ErrNotFound = errors.New("game not found")

// Registry keeps track of the game instances known to djinn. Instance ids
// are handed out by the registry itself from a counter it owns, so separate
// registries never influence each other.
type Registry struct {
	next    ID
	entries []Entry
}

// Add registers the given game under the given key and returns its new id.
func (registry *Registry) Add(key string, game Game) ID {
	id := registry.next
	registry.next++

	registry.entries = append(registry.entries, Entry{
		ID:   id,
		Key:  strings.ToLower(key),
		Game: game,
	})

	return id
}

// Get returns the game registered with the given id.
func (registry *Registry) Get(id ID) (Game, bool) {
	for _, entry := range registry.entries {
		if entry.ID == id {
			return entry.Game, true
		}
	}

	return nil, false
}

// Find looks up a game by its key or by its id, written as "#<id>" or just
// "<id>". Keys are matched case-insensitively.
func (registry *Registry) Find(name string) (Entry, error) {
	if n, err := strconv.Atoi(strings.TrimPrefix(name, "#")); err == nil {
		for _, entry := range registry.entries {
			if entry.ID == ID(n) {
				return entry, nil
			}
		}
	}

	name = strings.ToLower(name)
	for _, entry := range registry.entries {
		if entry.Key == name {
			return entry, nil
		}
	}

	return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Entries returns the registered games ordered by their keys.
func (registry *Registry) Entries() []Entry {
	entries := make([]Entry, len(registry.entries))
	copy(entries, registry.entries)

	sort.SliceStable(entries, func(i, j int) bool {
		return util.AlphanumCompare(entries[i].Key, entries[j].Key)
	})

	return entries
}

// Len returns the number of registered games.
func (registry *Registry) Len() int {
	return len(registry.entries)
}
