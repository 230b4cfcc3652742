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

package value

import (
	"fmt"
	"time"
)

// Equal implements = and <> for any two values of equal shape (spec
// §4.A). The linker rejects comparisons between incompatible types
// before this is ever called on mismatched kinds, except for the
// legitimate case of comparing two SV sentinels of different exact
// kind, which this treats as unequal rather than panicking.
func Equal(l, r Value) bool {
	if lk, lreason := l.SV(); lk != NotSV {
		rk, rreason := r.SV()
		return rk == lk && lreason == rreason
	}
	if rk, _ := r.SV(); rk != NotSV {
		return false
	}
	switch a := l.(type) {
	case Bool:
		b, ok := r.(Bool)
		return ok && a.B == b.B
	case Str:
		b, ok := r.(Str)
		return ok && a.S == b.S
	case Number:
		b, ok := r.(Number)
		return ok && a.Cmp(b) == 0
	case Date:
		b, ok := r.(Date)
		return ok && a.T.Equal(b.T)
	case Time:
		b, ok := r.(Time)
		return ok && a.Nanos == b.Nanos
	case DateTime:
		b, ok := r.(DateTime)
		return ok && a.T.Equal(b.T)
	case Duration:
		b, ok := r.(Duration)
		return ok && a.Seconds == b.Seconds
	case Period:
		b, ok := r.(Period)
		return ok && a.Equal(b)
	case Range:
		b, ok := r.(Range)
		return ok && a.Start == b.Start && a.End == b.End
	case Array:
		b, ok := r.(Array)
		if !ok || len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case TypeVal:
		b, ok := r.(TypeVal)
		return ok && a.T.Equal(b.T)
	}
	return false
}

// Compare implements <, <=, >, >= for Number, Date, Time, DateTime and
// Duration (spec §4.A). It returns an error for any other kind pair;
// the linker is the real gatekeeper, this is a defensive backstop.
func Compare(l, r Value) (int, error) {
	if lk, _ := l.SV(); lk != NotSV {
		return 0, fmt.Errorf("cannot order special value %s", l)
	}
	if rk, _ := r.SV(); rk != NotSV {
		return 0, fmt.Errorf("cannot order special value %s", r)
	}
	switch a := l.(type) {
	case Number:
		b, ok := r.(Number)
		if !ok {
			break
		}
		return a.Cmp(b), nil
	case Date:
		b, ok := r.(Date)
		if !ok {
			break
		}
		return timeCmp(a.T, b.T), nil
	case Time:
		b, ok := r.(Time)
		if !ok {
			break
		}
		return int64Cmp(a.Nanos, b.Nanos), nil
	case DateTime:
		b, ok := r.(DateTime)
		if !ok {
			break
		}
		return timeCmp(a.T, b.T), nil
	case Duration:
		b, ok := r.(Duration)
		if !ok {
			break
		}
		return int64Cmp(a.Seconds, b.Seconds), nil
	}
	return 0, fmt.Errorf("operands of kind %s and %s are not orderable", l.Kind(), r.Kind())
}

func timeCmp(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func int64Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
