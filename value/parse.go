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
	"strconv"
	"strings"
	"time"
)

// ParseDate parses the canonical YYYY-MM-DD form (spec §6).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{T: t}, nil
}

// ParseTime parses the canonical HH:MM:SS(.fff) form (spec §6).
func ParseTime(s string) (Time, error) {
	layout := "15:04:05"
	if strings.Contains(s, ".") {
		layout = "15:04:05.000"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Time{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), nil
}

// ParseDateTime parses the canonical "YYYY-MM-DD HH:MM:SS(.f)" form, as
// well as the ISO "T"-separated variant used in source literals (spec
// §6, §8 end-to-end scenario 5).
func ParseDateTime(s string) (DateTime, error) {
	s = strings.Replace(s, "T", " ", 1)
	layouts := []string{"2006-01-02 15:04:05.000", "2006-01-02 15:04:05"}
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{T: t}, nil
		} else {
			lastErr = err
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q: %w", s, lastErr)
}

// ParseDuration parses an ISO-8601 day-time duration [-]PnDTnHnMnS
// (spec §6). Year/month designators are rejected: Duration is strictly
// the day-time quantity, Period is the year-month/day one (spec §3.1).
func ParseDuration(s string) (Duration, error) {
	orig := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") {
		return Duration{}, fmt.Errorf("invalid duration %q", orig)
	}
	s = s[1:]
	datePart, timePart, hasTime := strings.Cut(s, "T")
	if strings.ContainsAny(datePart, "YM") {
		return Duration{}, fmt.Errorf("invalid duration %q: years/months not allowed", orig)
	}
	var totalSeconds int64
	if days, err := consumeNum(&datePart, 'D'); err != nil {
		return Duration{}, err
	} else {
		totalSeconds += days * secondsPerDay
	}
	if datePart != "" {
		return Duration{}, fmt.Errorf("invalid duration %q", orig)
	}
	if hasTime {
		if h, err := consumeNum(&timePart, 'H'); err != nil {
			return Duration{}, err
		} else {
			totalSeconds += h * 3600
		}
		if m, err := consumeNum(&timePart, 'M'); err != nil {
			return Duration{}, err
		} else {
			totalSeconds += m * 60
		}
		if sec, err := consumeNum(&timePart, 'S'); err != nil {
			return Duration{}, err
		} else {
			totalSeconds += sec
		}
		if timePart != "" {
			return Duration{}, fmt.Errorf("invalid duration %q", orig)
		}
	}
	if neg {
		totalSeconds = -totalSeconds
	}
	return Duration{Seconds: totalSeconds}, nil
}

// ParsePeriod parses an ISO-8601 year-month/day period [-]PnYnMnD.
func ParsePeriod(s string) (Period, error) {
	orig := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") {
		return Period{}, fmt.Errorf("invalid period %q", orig)
	}
	s = s[1:]
	if strings.ContainsAny(s, "HMS") && strings.Contains(s, "T") {
		return Period{}, fmt.Errorf("invalid period %q: time designator not allowed", orig)
	}
	years, err := consumeNum(&s, 'Y')
	if err != nil {
		return Period{}, err
	}
	months, err := consumeNum(&s, 'M')
	if err != nil {
		return Period{}, err
	}
	days, err := consumeNum(&s, 'D')
	if err != nil {
		return Period{}, err
	}
	if s != "" {
		return Period{}, fmt.Errorf("invalid period %q", orig)
	}
	total := int(years)*12 + int(months)
	if neg {
		total, days = -total, -days
	}
	return Period{Months: total, Days: int(days)}, nil
}

// consumeNum reads a leading "<digits><unit>" prefix off *s, returning
// 0 if unit is not present at the start.
func consumeNum(s *string, unit byte) (int64, error) {
	i := 0
	for i < len(*s) && ((*s)[i] >= '0' && (*s)[i] <= '9') {
		i++
	}
	if i == 0 || i >= len(*s) || (*s)[i] != unit {
		return 0, nil
	}
	n, err := strconv.ParseInt((*s)[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in %q: %w", *s, err)
	}
	*s = (*s)[i+1:]
	return n, nil
}
