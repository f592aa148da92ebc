// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ordinalPattern = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)
	yearPattern    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	rangeSeparator = regexp.MustCompile(`\s*[-–—]\s*|\s+to\s+`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseDateRange parses listing text such as "Feb 10th - 12th",
// "Feb 28 – Mar 2, 2025" or "Dec 28 - Jan 3" into UTC start and end dates.
//
// Without an explicit year, now's year is used. A range whose end month is
// earlier than its start month rolls the end into the following year. On any
// failure it returns (now, now, false) so the record degrades instead of
// being dropped.
func ParseDateRange(text string, now time.Time) (start, end time.Time, ok bool) {
	now = now.UTC()
	fail := func() (time.Time, time.Time, bool) { return now, now, false }

	clean := ordinalPattern.ReplaceAllString(text, "$1")
	clean = strings.ReplaceAll(clean, ",", " ")

	year := now.Year()
	explicitYear := false
	if ys := yearPattern.FindAllString(clean, -1); len(ys) > 0 {
		// The last year wins: "Dec 28, 2024 - Jan 3, 2025" anchors on 2025.
		year, _ = strconv.Atoi(ys[len(ys)-1])
		explicitYear = true
		clean = yearPattern.ReplaceAllString(clean, " ")
	}

	var parts []string
	for _, p := range rangeSeparator.Split(clean, -1) {
		if p = CollapseSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 || len(parts) > 2 {
		return fail()
	}

	startMonth, startDay, hasMonth := parseMonthDay(parts[0])
	if !hasMonth || startDay == 0 {
		return fail()
	}
	endMonth, endDay := startMonth, startDay
	if len(parts) == 2 {
		m, d, withMonth := parseMonthDay(parts[1])
		if d == 0 {
			return fail()
		}
		endDay = d
		if withMonth {
			endMonth = m
		}
	}

	startYear, endYear := year, year
	if endMonth < startMonth {
		if explicitYear {
			startYear = year - 1
		} else {
			endYear = year + 1
		}
	}

	s, okStart := date(startYear, startMonth, startDay)
	e, okEnd := date(endYear, endMonth, endDay)
	if !okStart || !okEnd {
		return fail()
	}
	if e.Before(s) {
		e = s
	}
	return s, e, true
}

// parseMonthDay reads "Feb 10", "10 Feb", "February 10" or a bare "12".
func parseMonthDay(s string) (month time.Month, day int, hasMonth bool) {
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, ".")
		if n, err := strconv.Atoi(tok); err == nil {
			if day == 0 {
				day = n
			}
			continue
		}
		if len(tok) >= 3 {
			if m, found := monthsByPrefix[strings.ToLower(tok[:3])]; found && !hasMonth {
				month, hasMonth = m, true
			}
		}
	}
	return month, day, hasMonth
}

// date builds a UTC midnight, rejecting days that overflow the month.
func date(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t, t.Day() == day
}
