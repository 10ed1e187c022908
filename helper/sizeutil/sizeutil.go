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
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// ConvertToMB allows to convert a MB size as "42" or a human readable size as
// "42GB" or "42 GiB" into MB, as expected by the scheduler --mem option.
func ConvertToMB(size string) (int, error) {
	// Default size unit is MB
	mSize, err := strconv.Atoi(size)
	if err == nil {
		if mSize < 0 {
			return 0, errors.Errorf("invalid negative size %q", size)
		}
		return mSize, nil
	}
	// Not an int value, so maybe a human readable size: we try to retrieve bytes
	bSize, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, errors.Wrapf(err, "can't convert size %q to bytes value", size)
	}
	mb := bSize / humanize.MByte
	if bSize%humanize.MByte != 0 {
		mb++
	}
	return int(mb), nil
}
