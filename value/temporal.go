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

const secondsPerDay = 86400

// Date, Time and DateTime are calendar/clock values without timezone
// (spec §3.1). They are backed by time.Time pinned to UTC purely as a
// calendar calculator; no timezone semantics are ever observed.

type Date struct {
	T      time.Time // Y/M/D only meaningful fields
	sv     SVKind
	reason string
}

func NewDate(y, m, d int) Date { return Date{T: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)} }
func NewMissingDate(reason string) Date { return Date{sv: Missing, reason: reason} }
func NewNADate(reason string) Date      { return Date{sv: NotApplicable, reason: reason} }

func (Date) Kind() Kind             { return DateKind }
func (Date) Type() Type             { return DateT }
func (d Date) SV() (SVKind, string) { return d.sv, d.reason }
func (d Date) IsSV() bool           { return d.sv != NotSV }
func (d Date) String() string {
	if d.sv != NotSV {
		return svString(d.sv, d.reason)
	}
	return d.T.Format("2006-01-02")
}

type Time struct {
	// Nanos is nanoseconds since midnight, always in [0, 24h).
	Nanos  int64
	sv     SVKind
	reason string
}

func NewTime(h, m, s, nanos int) Time {
	return Time{Nanos: int64(h)*3600e9 + int64(m)*60e9 + int64(s)*1e9 + int64(nanos)}
}
func NewMissingTime(reason string) Time { return Time{sv: Missing, reason: reason} }
func NewNATime(reason string) Time      { return Time{sv: NotApplicable, reason: reason} }

func (Time) Kind() Kind             { return TimeKind }
func (Time) Type() Type             { return TimeT }
func (t Time) SV() (SVKind, string) { return t.sv, t.reason }
func (t Time) IsSV() bool           { return t.sv != NotSV }
func (t Time) String() string {
	if t.sv != NotSV {
		return svString(t.sv, t.reason)
	}
	d := time.Duration(t.Nanos)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	frac := int(d % time.Second)
	if frac != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, frac/1e6)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

type DateTime struct {
	T      time.Time
	sv     SVKind
	reason string
}

func NewDateTime(y, m, d, h, mi, s, nanos int) DateTime {
	return DateTime{T: time.Date(y, time.Month(m), d, h, mi, s, nanos, time.UTC)}
}
func NewMissingDateTime(reason string) DateTime { return DateTime{sv: Missing, reason: reason} }
func NewNADateTime(reason string) DateTime      { return DateTime{sv: NotApplicable, reason: reason} }

func (DateTime) Kind() Kind             { return DateTimeKind }
func (DateTime) Type() Type             { return DateTimeT }
func (dt DateTime) SV() (SVKind, string) { return dt.sv, dt.reason }
func (dt DateTime) IsSV() bool           { return dt.sv != NotSV }
func (dt DateTime) String() string {
	if dt.sv != NotSV {
		return svString(dt.sv, dt.reason)
	}
	if dt.T.Nanosecond() != 0 {
		return dt.T.Format("2006-01-02 15:04:05.000")
	}
	return dt.T.Format("2006-01-02 15:04:05")
}

// Duration is a signed whole-seconds day-time quantity (spec §3.1).
type Duration struct {
	Seconds int64
	sv      SVKind
	reason  string
}

func NewDuration(seconds int64) Duration { return Duration{Seconds: seconds} }
func NewMissingDuration(reason string) Duration { return Duration{sv: Missing, reason: reason} }
func NewNADuration(reason string) Duration      { return Duration{sv: NotApplicable, reason: reason} }

func (Duration) Kind() Kind             { return DurationKind }
func (Duration) Type() Type             { return DurationT }
func (d Duration) SV() (SVKind, string) { return d.sv, d.reason }
func (d Duration) IsSV() bool           { return d.sv != NotSV }

// String renders ISO-8601 [-]PnDTnHnMnS, or PT0S for zero (spec §6).
func (d Duration) String() string {
	if d.sv != NotSV {
		return svString(d.sv, d.reason)
	}
	sign := ""
	s := d.Seconds
	if s < 0 {
		sign = "-"
		s = -s
	}
	if s == 0 {
		return "PT0S"
	}
	days := s / secondsPerDay
	s -= days * secondsPerDay
	h := s / 3600
	s -= h * 3600
	m := s / 60
	s -= m * 60
	out := sign + "P"
	if days != 0 {
		out += fmt.Sprintf("%dD", days)
	}
	if h != 0 || m != 0 || s != 0 {
		out += "T"
		if h != 0 {
			out += fmt.Sprintf("%dH", h)
		}
		if m != 0 {
			out += fmt.Sprintf("%dM", m)
		}
		if s != 0 {
			out += fmt.Sprintf("%dS", s)
		}
	}
	return out
}

// Period is a signed (months, days) year-month/day quantity (spec
// §3.1), kept strictly distinct from Duration: they never interconvert
// implicitly.
type Period struct {
	Months int
	Days   int
	sv     SVKind
	reason string
}

func NewPeriod(months, days int) Period { return Period{Months: months, Days: days} }
func NewMissingPeriod(reason string) Period { return Period{sv: Missing, reason: reason} }
func NewNAPeriod(reason string) Period      { return Period{sv: NotApplicable, reason: reason} }

func (Period) Kind() Kind             { return PeriodKind }
func (Period) Type() Type             { return PeriodT }
func (p Period) SV() (SVKind, string) { return p.sv, p.reason }
func (p Period) IsSV() bool           { return p.sv != NotSV }

// String renders ISO-8601 [-]PnYnMnD (spec §6).
func (p Period) String() string {
	if p.sv != NotSV {
		return svString(p.sv, p.reason)
	}
	if p.Months == 0 && p.Days == 0 {
		return "P0D"
	}
	sign := ""
	months, days := p.Months, p.Days
	if months < 0 && days <= 0 {
		sign = "-"
		months, days = -months, -days
	}
	years := months / 12
	months = months % 12
	out := sign + "P"
	if years != 0 {
		out += fmt.Sprintf("%dY", years)
	}
	if months != 0 {
		out += fmt.Sprintf("%dM", months)
	}
	if days != 0 || (years == 0 && months == 0) {
		out += fmt.Sprintf("%dD", days)
	}
	return out
}

// Equal supports the equality-only comparison Periods allow (spec §4.A).
func (p Period) Equal(o Period) bool {
	return p.Months == o.Months && p.Days == o.Days
}
