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

//go:build !windows
// +build !windows

package launcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPermissionsAddsGroupReadExecute(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	sub := filepath.Join(root, "fold-0")
	require.NoError(t, os.Mkdir(sub, 0700))
	plain := filepath.Join(sub, "metrics.csv")
	require.NoError(t, os.WriteFile(plain, []byte("epoch,loss\n"), 0600))
	script := filepath.Join(sub, "eval.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0700))

	require.NoError(t, FixPermissions(root, ""))

	info, err := os.Stat(sub)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm(), "directories get g+rx")

	info, err = os.Stat(plain)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm(), "plain files only get g+r")

	info, err = os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm(), "owner-executable files get g+rx")
}

func TestFixPermissionsKeepsSetgidBit(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	shared := filepath.Join(root, "shared")
	require.NoError(t, os.Mkdir(shared, 0700))
	require.NoError(t, os.Chmod(shared, 0700|os.ModeSetgid))

	require.NoError(t, FixPermissions(root, ""))

	info, err := os.Stat(shared)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSetgid, "setgid directories keep their group inheritance")
	assert.Equal(t, os.FileMode(0750), info.Mode().Perm())
}

func TestFixPermissionsUnknownGroup(t *testing.T) {
	t.Parallel()
	err := FixPermissions(t.TempDir(), "no-such-group-hopefully")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown group")
}

func TestFixPermissionsMissingRootIsReported(t *testing.T) {
	t.Parallel()
	err := FixPermissions(filepath.Join(t.TempDir(), "does-not-exist"), "")
	require.Error(t, err)
}
