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

package stringutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueTimestampedName(t *testing.T) {
	t.Parallel()
	n1 := UniqueTimestampedName("foldrun_", ".sbatch")
	n2 := UniqueTimestampedName("foldrun_", ".sbatch")
	require.True(t, strings.HasPrefix(n1, "foldrun_"))
	require.True(t, strings.HasSuffix(n1, ".sbatch"))
	assert.NotEqual(t, n1, n2)
}
