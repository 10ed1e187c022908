// Copyright 2026 The foldrun Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sizeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToMB(t *testing.T) {
	t.Parallel()
	var testData = []struct {
		test          string
		inputSize     string
		expectedSize  int
		expectedError bool
	}{
		{"mem1", "1", 1, false},
		{"mem100", "100", 100, false},
		{"mem1500M", "1500 MB", 1500, false},
		{"mem1GB", "1GB", 1000, false},
		{"mem1GBSpaces", "1      GB", 1000, false},
		{"mem1GiB", "1 GiB", 1074, false},
		{"mem64GB", "64GB", 64000, false},
		{"mem1TB", "1 tb", 1000000, false},
		{"memNegative", "-12", 0, true},
		{"memError", "1 deca", 0, true},
	}
	for _, tt := range testData {
		s, err := ConvertToMB(tt.inputSize)
		if !tt.expectedError {
			assert.Nil(t, err)
			assert.Equal(t, tt.expectedSize, s, "unexpected size for %s", tt.test)
		} else {
			assert.Error(t, err, "Expected an error for %s", tt.test)
		}
	}
}
