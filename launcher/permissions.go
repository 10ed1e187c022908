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

package launcher

import (
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/marl/foldrun/log"
)

// FixPermissions recursively gives the named group ownership of the output
// tree rooted at root and adds group read permission, plus group execute on
// directories and files that are already owner-executable (chmod g+rX
// semantics).
//
// An empty group skips the ownership change and only adjusts permission bits.
// Every entry is visited even when some fail: per-entry errors are collected
// and returned together instead of aborting the walk.
func FixPermissions(root, group string) error {
	gid := -1
	if group != "" {
		g, err := user.LookupGroup(group)
		if err != nil {
			return errors.Wrapf(err, "unknown group %q", group)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return errors.Wrapf(err, "unexpected non-numeric gid %q for group %q", g.Gid, group)
		}
	}

	var errs *multierror.Error
	walkErr := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			errs = multierror.Append(errs, err)
			return nil
		}
		if gid >= 0 {
			if err := os.Lchown(p, -1, gid); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		// Never chmod through a symlink, the target may live outside the tree
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		// Only add bits: setuid/setgid/sticky must survive, setgid
		// directories are how shared trees keep their group
		mode := info.Mode() | 0040
		if info.IsDir() || mode&0100 != 0 {
			mode |= 0010
		}
		if mode != info.Mode() {
			log.Debugf("chmod %#o %s", mode, p)
			if err := os.Chmod(p, mode); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
		return nil
	})
	if walkErr != nil {
		errs = multierror.Append(errs, walkErr)
	}
	return errs.ErrorOrNil()
}
