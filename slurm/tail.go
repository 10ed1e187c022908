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

package slurm

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/marl/foldrun/log"
)

// FollowOutput streams the content appended to the scheduler output file at
// path into w until ctx is done. The file does not have to exist yet: the
// watch covers its parent directory so creation by the scheduler is caught.
func FollowOutput(ctx context.Context, w io.Writer, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create filesystem watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %q", dir)
	}

	var f *os.File
	var offset int64
	defer func() {
		if f != nil {
			f.Close()
		}
	}()

	copyNew := func() error {
		if f == nil {
			var err error
			f, err = os.Open(path)
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return err
		}
		n, err := io.Copy(w, f)
		offset += n
		return err
	}

	// catch up with whatever was written before the watch started
	if err := copyNew(); err != nil {
		return errors.Wrapf(err, "failed to read output file %q", path)
	}

	for {
		select {
		case <-ctx.Done():
			// drain once so a final write racing the cancellation is not lost
			if err := copyNew(); err != nil {
				log.Debugf("final read of %q failed: %v", path, err)
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := copyNew(); err != nil {
				return errors.Wrapf(err, "failed to read output file %q", path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrapf(err, "watcher failed on %q", dir)
		}
	}
}
