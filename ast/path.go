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

package ast

// Root climbs the schema parent chain to the ultimate root.
func (c *ContextObject) Root() *ContextObject {
	for !c.Node.IsRoot() {
		c = c.Node.Parent
	}
	return c
}

// PathFromRoot returns the vector of field names from the model root
// down to c (spec §4.E, §7 error location).
func (c *ContextObject) PathFromRoot() []string {
	var rev []string
	for cur := c; !cur.Node.IsRoot(); cur = cur.Node.Parent {
		rev = append(rev, cur.Node.FieldName)
	}
	out := make([]string, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}

// Root climbs the execution parent chain to the ultimate root.
func (e *ExecutionContext) Root() *ExecutionContext {
	for !e.Node.IsRoot() {
		e = e.Node.Parent
	}
	return e
}
