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

package plugin

import (
	"fmt"
	"math"

	"github.com/dop251/goja"

	"laptudirm.com/x/djinn/pkg/games"
	"laptudirm.com/x/djinn/pkg/minimax"
)

// The as* converters turn a value returned by a plugin into a Go value,
// failing if the value does not have the expected shape.

func describe(value goja.Value) string {
	switch {
	case value == nil || goja.IsUndefined(value):
		return "undefined"
	case goja.IsNull(value):
		return "null"
	default:
		return fmt.Sprintf("%q (%v)", value.String(), value.ExportType())
	}
}

func mismatch(want string, value goja.Value) error {
	return fmt.Errorf("expected %s, got %s", want, describe(value))
}

func ignore(goja.Value) (struct{}, error) {
	return struct{}{}, nil
}

func asBool(value goja.Value) (bool, error) {
	if value != nil {
		if b, ok := value.Export().(bool); ok {
			return b, nil
		}
	}

	return false, mismatch("a boolean", value)
}

func number(x any) (float64, bool) {
	switch x := x.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x)
	default:
		return 0, false
	}
}

func asNumber(value goja.Value) (float64, error) {
	if value != nil {
		if n, ok := number(value.Export()); ok {
			return n, nil
		}
	}

	return 0, mismatch("a number", value)
}

func asString(value goja.Value) (string, error) {
	if value != nil {
		if s, ok := value.Export().(string); ok {
			return s, nil
		}
	}

	return "", mismatch("a string", value)
}

func asStrings(value goja.Value) ([]string, error) {
	if value == nil {
		return nil, mismatch("an array of strings", value)
	}

	array, ok := value.Export().([]any)
	if !ok {
		return nil, mismatch("an array of strings", value)
	}

	strs := make([]string, len(array))
	for i, x := range array {
		s, ok := x.(string)
		if !ok {
			return nil, fmt.Errorf("expected an array of strings, element %d is %v", i, x)
		}

		strs[i] = s
	}

	return strs, nil
}

func asObject(value goja.Value) (*goja.Object, error) {
	if obj, ok := value.(*goja.Object); ok {
		return obj, nil
	}

	return nil, mismatch("an object", value)
}

// asPlayer accepts true for Max and false for Min, the strings "max" and
// "min", or a number whose sign gives the player.
func asPlayer(value goja.Value) (minimax.Player, error) {
	if value != nil {
		switch x := value.Export().(type) {
		case bool:
			if x {
				return minimax.Max, nil
			}

			return minimax.Min, nil
		case string:
			switch x {
			case "max":
				return minimax.Max, nil
			case "min":
				return minimax.Min, nil
			}
		default:
			if n, ok := number(x); ok && n != 0 {
				if n > 0 {
					return minimax.Max, nil
				}

				return minimax.Min, nil
			}
		}
	}

	return minimax.Max, mismatch(`a player ("max", "min", a boolean or a signed number)`, value)
}

type size struct {
	width, height int
}

func asSize(value goja.Value) (size, error) {
	if value != nil {
		if array, ok := value.Export().([]any); ok && len(array) == 2 {
			width, wok := number(array[0])
			height, hok := number(array[1])
			if wok && hok && width >= 0 && height >= 0 {
				return size{int(width), int(height)}, nil
			}
		}
	}

	return size{}, mismatch("a [width, height] pair", value)
}

// asWinState maps true to a decisive result, false to a draw, and null or
// undefined to an ongoing game.
func asWinState(value goja.Value) (games.WinState, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return games.Ongoing, nil
	}

	if decisive, ok := value.Export().(bool); ok {
		if decisive {
			return games.Decisive, nil
		}

		return games.Draw, nil
	}

	return games.Ongoing, mismatch("a boolean or null", value)
}
