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
	"context"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// RunAll launches every configured fold concurrently on the local machine,
// mirroring the fan-out the scheduler performs for a job array. Instances do
// not communicate: each writes to its own fold-specific subpaths of the
// output tree, as the trainer contract guarantees.
//
// The first failing fold cancels the remaining ones through the shared
// context. Results are indexed by fold.
func (l *Launcher) RunAll(ctx context.Context) ([]*Result, error) {
	if l.cfg.Folds <= 0 {
		return nil, errors.Errorf("invalid fold count %d", l.cfg.Folds)
	}

	results := make([]*Result, l.cfg.Folds)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < l.cfg.Folds; i++ {
		func(fold int) {
			g.Go(func() error {
				cfg := l.cfg
				cfg.Fold = strconv.Itoa(fold)
				fl := &Launcher{cfg: cfg, runner: l.runner, modules: l.modules}
				res, err := fl.Launch(gctx)
				results[fold] = res
				return err
			})
		}(i)
	}

	if err := g.Wait(); err != nil {
		return results, errors.Wrap(err, "fold sweep failed")
	}
	return results, nil
}
