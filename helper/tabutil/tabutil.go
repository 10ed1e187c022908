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

// Package tabutil renders fold results and queue states as console tables.
package tabutil

import (
	"fmt"

	"github.com/stevedomin/termtable"
)

// A Table accumulates rows of arbitrary values and renders them aligned, one
// row per fold run or array task.
type Table interface {
	// AddRow appends one row, values are stringified with fmt.Sprint
	AddRow(items ...interface{})
	// AddHeaders sets the column headers
	AddHeaders(headers ...string)
	// Render returns the aligned string representation
	Render() string
}

// NewTable creates an empty separator-style Table.
func NewTable() Table {
	return &table{tt: termtable.NewTable(nil, &termtable.TableOptions{
		Padding:      1,
		UseSeparator: true,
	})}
}

type table struct {
	tt *termtable.Table
}

func (t *table) AddHeaders(headers ...string) {
	t.tt.SetHeader(headers)
}

func (t *table) AddRow(items ...interface{}) {
	cells := make([]string, len(items))
	for i, item := range items {
		cells[i] = fmt.Sprint(item)
	}
	t.tt.AddRow(cells)
}

func (t *table) Render() string {
	return t.tt.Render()
}
