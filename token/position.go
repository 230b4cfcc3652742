// Copyright 2026 The EdgeRules Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines source positions for EdgeRules source text.
//
// EdgeRules sources are always a single in-memory string, so unlike
// cue/token this package does not need an interned multi-file
// registry: a Pos is just an offset/line/column triple.
package token

import "fmt"

// Pos describes a location in EdgeRules source text.
type Pos struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number, starting at 1 (byte count)
}

// NoPos is the zero value for Pos; it means "no position available".
var NoPos = Pos{}

// IsValid reports whether p designates a real source location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String renders the position as "line:column", or "-" if invalid.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Add returns the position advanced by n bytes on the same line.
func (p Pos) Add(n int) Pos {
	return Pos{Offset: p.Offset + n, Line: p.Line, Column: p.Column + n}
}
