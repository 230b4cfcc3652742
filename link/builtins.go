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

package link

import (
	"github.com/rimvydasb/edgerules-sub001/errors"
	"github.com/rimvydasb/edgerules-sub001/token"
	"github.com/rimvydasb/edgerules-sub001/value"
)

// builtinSig type-checks a call's already-inferred argument types and
// returns the call's result type, or a linking error (spec §4.D
// "built-in function catalogue"). The matching runtime implementation
// lives in eval.builtins, keyed by the same name.
type builtinSig func(args []value.Type, pos token.Pos) (value.Type, *errors.Error)

func arity(name string, want int, args []value.Type, pos token.Pos) *errors.Error {
	if len(args) != want {
		return errors.New(errors.OtherLinkingError, pos, "%s expects %d argument(s), got %d", name, want, len(args))
	}
	return nil
}

func requireList(name string, args []value.Type, pos token.Pos) (value.Type, *errors.Error) {
	if args[0].Kind != value.ListKind {
		return value.Undef, errors.New(errors.TypesNotCompatible, pos, "%s expects a list, got %s", name, args[0])
	}
	return args[0], nil
}

var builtins = map[string]builtinSig{
	"count": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("count", 1, a, pos); err != nil {
			return value.Undef, err
		}
		if _, err := requireList("count", a, pos); err != nil {
			return value.Undef, err
		}
		return value.NumberT, nil
	},
	"sum": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("sum", 1, a, pos); err != nil {
			return value.Undef, err
		}
		lt, err := requireList("sum", a, pos)
		if err != nil {
			return value.Undef, err
		}
		if lt.Elem != nil && lt.Elem.Kind != value.NumberKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "sum expects a list of numbers, got %s", lt)
		}
		return value.NumberT, nil
	},
	"avg": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("avg", 1, a, pos); err != nil {
			return value.Undef, err
		}
		lt, err := requireList("avg", a, pos)
		if err != nil {
			return value.Undef, err
		}
		if lt.Elem != nil && lt.Elem.Kind != value.NumberKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "avg expects a list of numbers, got %s", lt)
		}
		return value.NumberT, nil
	},
	"min": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("min", 1, a, pos); err != nil {
			return value.Undef, err
		}
		lt, err := requireList("min", a, pos)
		if err != nil {
			return value.Undef, err
		}
		if lt.Elem == nil {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "min expects a non-empty-typed list")
		}
		return *lt.Elem, nil
	},
	"max": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("max", 1, a, pos); err != nil {
			return value.Undef, err
		}
		lt, err := requireList("max", a, pos)
		if err != nil {
			return value.Undef, err
		}
		if lt.Elem == nil {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "max expects a non-empty-typed list")
		}
		return *lt.Elem, nil
	},
	"abs": numberToNumber("abs"),
	"floor": numberToNumber("floor"),
	"ceil":  numberToNumber("ceil"),
	"round": numberToNumber("round"),
	"sqrt":  numberToNumber("sqrt"),
	"upper": stringToString("upper"),
	"lower": stringToString("lower"),
	"length": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("length", 1, a, pos); err != nil {
			return value.Undef, err
		}
		if a[0].Kind != value.StringKind && a[0].Kind != value.ListKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "length expects a string or list, got %s", a[0])
		}
		return value.NumberT, nil
	},
	"contains": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("contains", 2, a, pos); err != nil {
			return value.Undef, err
		}
		if a[0].Kind != value.ListKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "contains expects a list as its first argument, got %s", a[0])
		}
		return value.BooleanT, nil
	},
	"exists": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("exists", 1, a, pos); err != nil {
			return value.Undef, err
		}
		if _, err := requireList("exists", a, pos); err != nil {
			return value.Undef, err
		}
		return value.BooleanT, nil
	},
	"isEmpty": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("isEmpty", 1, a, pos); err != nil {
			return value.Undef, err
		}
		if _, err := requireList("isEmpty", a, pos); err != nil {
			return value.Undef, err
		}
		return value.BooleanT, nil
	},
	"today": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("today", 0, a, pos); err != nil {
			return value.Undef, err
		}
		return value.DateT, nil
	},
	"now": func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity("now", 0, a, pos); err != nil {
			return value.Undef, err
		}
		return value.DateTimeT, nil
	},
	"date":     stringToTemporal("date", value.DateT),
	"time":     stringToTemporal("time", value.TimeT),
	"datetime": stringToTemporal("datetime", value.DateTimeT),
	"duration": stringToTemporal("duration", value.DurationT),
	"period":   stringToTemporal("period", value.PeriodT),
}

// stringToTemporal builds the static signature for a temporal
// constructor function: one String argument, a fixed result type
// (spec §8 scenario 5's date/datetime/period/time/duration literals
// built outside of an `as` cast).
func stringToTemporal(name string, result value.Type) builtinSig {
	return func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity(name, 1, a, pos); err != nil {
			return value.Undef, err
		}
		if a[0].Kind != value.StringKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "%s expects a string, got %s", name, a[0])
		}
		return result, nil
	}
}

func numberToNumber(name string) builtinSig {
	return func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity(name, 1, a, pos); err != nil {
			return value.Undef, err
		}
		if a[0].Kind != value.NumberKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "%s expects a number, got %s", name, a[0])
		}
		return value.NumberT, nil
	}
}

func stringToString(name string) builtinSig {
	return func(a []value.Type, pos token.Pos) (value.Type, *errors.Error) {
		if err := arity(name, 1, a, pos); err != nil {
			return value.Undef, err
		}
		if a[0].Kind != value.StringKind {
			return value.Undef, errors.New(errors.TypesNotCompatible, pos, "%s expects a string, got %s", name, a[0])
		}
		return value.StringT, nil
	}
}
