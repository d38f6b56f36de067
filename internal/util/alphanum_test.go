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

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphanumCompare(t *testing.T) {
	tests := []struct {
		a, b string
		less bool
	}{
		{"game2", "game10", true},
		{"game10", "game2", false},
		{"ataxx", "chess", true},
		{"hex", "hex", false},
		{"hex", "hex2", true},
		{"hex2", "hex", false},
		{"", "a", true},
		{"v1.10", "v1.9", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.less, AlphanumCompare(test.a, test.b), "%q < %q", test.a, test.b)
	}
}
