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

package duel

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"laptudirm.com/x/djinn/pkg/minimax"
)

var ErrEmptyBook = errors.New("opening book is empty")

// Book is an opening book, a list of starting positions written one per
// line. Blank lines and lines starting with '#' are skipped.
type Book struct {
	Entries []string

	// Random picks the opening of each pair at random instead of going
	// through the book in order.
	Random bool
}

// NewBook parses an opening book. The strategy is either "random" or
// "sequential".
func NewBook(data string, strategy string) (*Book, error) {
	var book Book
	switch strategy {
	case "random":
		book.Random = true
	case "sequential", "":
	default:
		return nil, fmt.Errorf("unknown book strategy %q", strategy)
	}

	for _, entry := range strings.Split(data, "\n") {
		entry = strings.Trim(entry, "\n\r\t ")
		if entry != "" && !strings.HasPrefix(entry, "#") {
			book.Entries = append(book.Entries, entry)
		}
	}

	if len(book.Entries) == 0 {
		return nil, ErrEmptyBook
	}

	return &book, nil
}

// LoadBook reads the opening book in the given file.
func LoadBook(path string, strategy string) (*Book, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	book, err := NewBook(string(file), strategy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return book, nil
}

// entry returns the index of the opening the given pair starts from.
func (book *Book) entry(seed int64, number int) int {
	if book.Random {
		// offset from the seeds of the random plies played after the book
		rng := rand.New(rand.NewSource(^(seed + int64(number))))
		return rng.Intn(len(book.Entries))
	}

	return number % len(book.Entries)
}

// RunBook is like Run, but the pairs start from the positions in the given
// opening book, read with parse. Random plies are played after the book
// position when config.OpeningPlies is set.
func RunBook[P minimax.Position[P, float64, A], A any](ctx context.Context, config Config, book *Book, parse func(string) (P, error), search Searcher[P, A]) (*Report, error) {
	starts := make([]P, len(book.Entries))
	for i, entry := range book.Entries {
		var err error
		if starts[i], err = parse(entry); err != nil {
			return nil, fmt.Errorf("opening %d: %w", i+1, err)
		}
	}

	return runFrom(ctx, config, func(number int) P {
		return starts[book.entry(config.Seed, number)]
	}, search)
}
