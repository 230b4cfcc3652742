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

// TemporalAdd and TemporalSub implement the temporal arithmetic table
// of spec §4.A. They are the runtime counterpart of the linker's
// static validation of the same table: by the time these are called,
// linking has already guaranteed the operand kinds form a valid pair.
//
// Adding a Period to a Date/DateTime shifts months first, clamping the
// day to the target month's last day, then shifts days. Time±Duration
// wraps modulo 24h. Mixing Duration with Period in one operator is a
// linking error and never reaches here.

func TemporalAdd(l, r Value) (Value, error) {
	switch a := l.(type) {
	case Date:
		switch b := r.(type) {
		case Duration:
			return dateDurationToDateTime(a, b, +1)
		case Period:
			return addPeriodToDate(a, b), nil
		}
	case Duration:
		if b, ok := r.(Date); ok {
			return dateDurationToDateTime(b, a, +1)
		}
		if b, ok := r.(Duration); ok {
			return combineDuration(a, b, +1), nil
		}
	case DateTime:
		switch b := r.(type) {
		case Duration:
			return addDurationToDateTime(a, b, +1), nil
		case Period:
			return addPeriodToDateTime(a, b), nil
		}
	case Time:
		if b, ok := r.(Duration); ok {
			return addDurationToTime(a, b, +1), nil
		}
	case Period:
		switch b := r.(type) {
		case Period:
			return combinePeriod(a, b, +1), nil
		case Date:
			return addPeriodToDate(b, a), nil
		case DateTime:
			return addPeriodToDateTime(b, a), nil
		}
	}
	return nil, fmt.Errorf("operator + not supported between %s and %s", l.Kind(), r.Kind())
}

func TemporalSub(l, r Value) (Value, error) {
	switch a := l.(type) {
	case Date:
		switch b := r.(type) {
		case Duration:
			return dateDurationToDateTime(a, b, -1)
		case Period:
			return subPeriodFromDate(a, b), nil
		case Date:
			return Duration{Seconds: int64(a.T.Sub(b.T).Seconds())}, nil
		case DateTime:
			return Duration{Seconds: int64(a.T.Sub(b.T).Seconds())}, nil
		}
	case DateTime:
		switch b := r.(type) {
		case Duration:
			return addDurationToDateTime(a, b, -1), nil
		case Period:
			return subPeriodFromDateTime(a, b), nil
		case DateTime:
			return Duration{Seconds: int64(a.T.Sub(b.T).Seconds())}, nil
		case Date:
			return Duration{Seconds: int64(a.T.Sub(b.T).Seconds())}, nil
		}
	case Time:
		switch b := r.(type) {
		case Duration:
			return addDurationToTime(a, b, -1), nil
		case Time:
			return Duration{Seconds: (a.Nanos - b.Nanos) / 1e9}, nil
		}
	case Duration:
		if b, ok := r.(Duration); ok {
			return combineDuration(a, b, -1), nil
		}
	case Period:
		if b, ok := r.(Period); ok {
			return combinePeriod(a, b, -1), nil
		}
	}
	return nil, fmt.Errorf("operator - not supported between %s and %s", l.Kind(), r.Kind())
}

func combineDuration(a, b Duration, sign int64) Duration {
	if a.IsSV() {
		return a
	}
	if b.IsSV() {
		return b
	}
	return Duration{Seconds: a.Seconds + sign*b.Seconds}
}

func combinePeriod(a, b Period, sign int) Period {
	if a.IsSV() {
		return a
	}
	if b.IsSV() {
		return b
	}
	return Period{Months: a.Months + sign*b.Months, Days: a.Days + sign*b.Days}
}

func dateDurationToDateTime(d Date, dur Duration, sign int64) (DateTime, error) {
	if d.IsSV() {
		return NewMissingDateTime(""), nil
	}
	if dur.IsSV() {
		return NewMissingDateTime(""), nil
	}
	t := d.T.Add(time.Duration(sign*dur.Seconds) * time.Second)
	return DateTime{T: t}, nil
}

func addDurationToDateTime(dt DateTime, dur Duration, sign int64) DateTime {
	if dt.IsSV() {
		return dt
	}
	if dur.IsSV() {
		return NewMissingDateTime("")
	}
	return DateTime{T: dt.T.Add(time.Duration(sign*dur.Seconds) * time.Second)}
}

func addDurationToTime(t Time, dur Duration, sign int64) Time {
	if t.IsSV() {
		return t
	}
	if dur.IsSV() {
		return NewMissingTime("")
	}
	total := t.Nanos + sign*dur.Seconds*1e9
	const dayNanos = secondsPerDay * 1e9
	total %= dayNanos
	if total < 0 {
		total += dayNanos
	}
	return Time{Nanos: total}
}

// shiftMonths adds months to t, clamping the day to the resulting
// month's last day (spec §4.A, §8 boundary behaviour).
func shiftMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	totalMonths := int(m) - 1 + months
	y += totalMonths / 12
	mm := totalMonths % 12
	if mm < 0 {
		mm += 12
		y--
	}
	newMonth := time.Month(mm + 1)
	lastDay := lastDayOfMonth(y, newMonth)
	if d > lastDay {
		d = lastDay
	}
	return time.Date(y, newMonth, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func lastDayOfMonth(y int, m time.Month) int {
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	last := firstOfNext.Add(-24 * time.Hour)
	return last.Day()
}

func addPeriodToDate(d Date, p Period) Date {
	if d.IsSV() {
		return d
	}
	if p.IsSV() {
		return NewMissingDate("")
	}
	t := shiftMonths(d.T, p.Months)
	t = t.AddDate(0, 0, p.Days)
	return Date{T: t}
}

func subPeriodFromDate(d Date, p Period) Date {
	return addPeriodToDate(d, Period{Months: -p.Months, Days: -p.Days})
}

func addPeriodToDateTime(dt DateTime, p Period) DateTime {
	if dt.IsSV() {
		return dt
	}
	if p.IsSV() {
		return NewMissingDateTime("")
	}
	t := shiftMonths(dt.T, p.Months)
	t = t.AddDate(0, 0, p.Days)
	return DateTime{T: t}
}

func subPeriodFromDateTime(dt DateTime, p Period) DateTime {
	return addPeriodToDateTime(dt, Period{Months: -p.Months, Days: -p.Days})
}

// Field accessors backing the named-component selection of spec §4.F.

func (d Date) Year() int  { return d.T.Year() }
func (d Date) Month() int { return int(d.T.Month()) }
func (d Date) Day() int   { return d.T.Day() }
func (d Date) Weekday() int {
	wd := int(d.T.Weekday())
	if wd == 0 {
		return 7 // ISO: Monday=1..Sunday=7
	}
	return wd
}

func (t Time) Hour() int   { return int(time.Duration(t.Nanos) / time.Hour) }
func (t Time) Minute() int { return int(time.Duration(t.Nanos) % time.Hour / time.Minute) }
func (t Time) Second() int { return int(time.Duration(t.Nanos) % time.Minute / time.Second) }

func (dt DateTime) Year() int    { return dt.T.Year() }
func (dt DateTime) Month() int   { return int(dt.T.Month()) }
func (dt DateTime) Day() int     { return dt.T.Day() }
func (dt DateTime) Hour() int    { return dt.T.Hour() }
func (dt DateTime) Minute() int  { return dt.T.Minute() }
func (dt DateTime) Second() int  { return dt.T.Second() }
func (dt DateTime) Weekday() int {
	wd := int(dt.T.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
func (dt DateTime) DateOnly() Date { return Date{T: dt.T} }
func (dt DateTime) TimeOnly() Time {
	return Time{Nanos: int64(dt.T.Hour())*3600e9 + int64(dt.T.Minute())*60e9 + int64(dt.T.Second())*1e9 + int64(dt.T.Nanosecond())}
}

func (d Duration) Days() int64         { return d.Seconds / secondsPerDay }
func (d Duration) HoursPart() int64    { return (d.Seconds % secondsPerDay) / 3600 }
func (d Duration) MinutesPart() int64  { return (d.Seconds % 3600) / 60 }
func (d Duration) SecondsPart() int64  { return d.Seconds % 60 }
func (d Duration) TotalSeconds() int64 { return d.Seconds }
func (d Duration) TotalMinutes() int64 { return d.Seconds / 60 }
func (d Duration) TotalHours() int64   { return d.Seconds / 3600 }

func (p Period) Years() int      { return p.Months / 12 }
func (p Period) MonthsPart() int { return p.Months % 12 }
func (p Period) TotalMonths() int { return p.Months }
func (p Period) TotalDays() int   { return p.Days }
