// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule is a parsed 5-field cron expression:
//
//	minute hour day-of-month month day-of-week
//
// Each field accepts *, a value, a range (a-b), a step (*/n, a-b/n, a/n) or a
// comma-separated list of those. Months and weekdays also accept three-letter
// names (JAN, MON). Day-of-week 7 is Sunday.
type Schedule struct {
	expr   string
	minute uint64
	hour   uint64
	dom    uint64
	month  uint64
	dow    uint64

	// domStar and dowStar record unrestricted fields. When both day fields are
	// restricted a time matches if either does.
	domStar bool
	dowStar bool
}

type cronField struct {
	name  string
	min   int
	max   int
	names map[string]int
}

var (
	minuteField = cronField{name: "minute", min: 0, max: 59}
	hourField   = cronField{name: "hour", min: 0, max: 23}
	domField    = cronField{name: "day-of-month", min: 1, max: 31}
	monthField  = cronField{name: "month", min: 1, max: 12, names: map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}}
	dowField = cronField{name: "day-of-week", min: 0, max: 7, names: map[string]int{
		"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
	}}
)

// ParseSchedule parses a 5-field cron expression.
func ParseSchedule(expr string) (*Schedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return nil, fmt.Errorf("cron expression %q must have 5 fields, got %d", expr, len(fields))
	}

	s := &Schedule{expr: strings.Join(fields, " ")}
	specs := []struct {
		field cronField
		dst   *uint64
	}{
		{minuteField, &s.minute},
		{hourField, &s.hour},
		{domField, &s.dom},
		{monthField, &s.month},
		{dowField, &s.dow},
	}
	for i, spec := range specs {
		bits, err := spec.field.parse(fields[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s field: %w", spec.field.name, err)
		}
		*spec.dst = bits
	}

	// Fold 7 into 0 so Sunday has one bit.
	if s.dow&(1<<7) != 0 {
		s.dow = (s.dow | 1) &^ (1 << 7)
	}
	s.domStar = fields[2] == "*" || strings.HasPrefix(fields[2], "*/")
	s.dowStar = fields[4] == "*" || strings.HasPrefix(fields[4], "*/")
	return s, nil
}

// String returns the normalized expression.
func (s *Schedule) String() string {
	return s.expr
}

// Next returns the first whole minute strictly after t that matches the
// schedule, in t's location. It returns the zero time if nothing matches
// within five years (for example "0 0 30 2 *").
func (s *Schedule) Next(t time.Time) time.Time {
	loc := t.Location()
	t = t.Truncate(time.Minute).Add(time.Minute)
	limit := t.AddDate(5, 0, 0)

	for t.Before(limit) {
		if !has(s.month, int(t.Month())) {
			t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, loc)
			continue
		}
		if !s.dayMatches(t) {
			t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
			continue
		}
		if !has(s.hour, t.Hour()) {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, loc)
			continue
		}
		if !has(s.minute, t.Minute()) {
			t = t.Add(time.Minute)
			continue
		}
		return t
	}
	return time.Time{}
}

func (s *Schedule) dayMatches(t time.Time) bool {
	dom := has(s.dom, t.Day())
	dow := has(s.dow, int(t.Weekday()))
	switch {
	case s.domStar && s.dowStar:
		return true
	case s.domStar:
		return dow
	case s.dowStar:
		return dom
	default:
		return dom || dow
	}
}

func has(bits uint64, v int) bool {
	return bits&(1<<uint(v)) != 0
}

// parse converts one field to a bitset.
func (f cronField) parse(field string) (uint64, error) {
	var bits uint64
	for _, part := range strings.Split(field, ",") {
		if part == "" {
			return 0, fmt.Errorf("empty list element in %q", field)
		}

		rangePart, step := part, 1
		if i := strings.IndexByte(part, '/'); i >= 0 {
			n, err := strconv.Atoi(part[i+1:])
			if err != nil || n <= 0 {
				return 0, fmt.Errorf("invalid step %q", part[i+1:])
			}
			rangePart, step = part[:i], n
		}

		lo, hi := f.min, f.max
		switch {
		case rangePart == "*":
		case strings.Contains(rangePart, "-"):
			a, b, _ := strings.Cut(rangePart, "-")
			var err error
			if lo, err = f.value(a); err != nil {
				return 0, err
			}
			if hi, err = f.value(b); err != nil {
				return 0, err
			}
			if lo > hi {
				return 0, fmt.Errorf("range %q is reversed", rangePart)
			}
		default:
			v, err := f.value(rangePart)
			if err != nil {
				return 0, err
			}
			lo = v
			// A bare value with a step runs to the end of the field.
			if strings.Contains(part, "/") {
				hi = f.max
			} else {
				hi = v
			}
		}

		for v := lo; v <= hi; v += step {
			bits |= 1 << uint(v)
		}
	}
	return bits, nil
}

func (f cronField) value(s string) (int, error) {
	if v, ok := f.names[strings.ToLower(s)]; ok {
		return v, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	if v < f.min || v > f.max {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", v, f.min, f.max)
	}
	return v, nil
}
