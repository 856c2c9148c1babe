package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	relativeRegex = regexp.MustCompile(`(?i)(\d+)\+?\s*(minute|hour|day|week|month)s?\s+ago`)
)

// ParsePostedTime resolves a card's posted time from either an absolute
// datetime attribute or a relative "3 days ago" label. Unparseable input
// yields nil, never an error: a missing timestamp does not fail a card.
func ParsePostedTime(datetimeAttr, relativeText string, now time.Time) *time.Time {
	if t := parseAbsolute(datetimeAttr); t != nil {
		return t
	}
	return parseRelative(relativeText, now)
}

func parseAbsolute(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || !isoDateRegex.MatchString(s) {
		return nil
	}
	//Try full RFC3339 first, then the date prefix
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
		return &t
	}
	return nil
}

func parseRelative(s string, now time.Time) *time.Time {
	match := relativeRegex.FindStringSubmatch(s)
	if match == nil {
		return nil
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}

	var d time.Duration
	switch strings.ToLower(match[2]) {
	case "minute":
		d = time.Duration(n) * time.Minute
	case "hour":
		d = time.Duration(n) * time.Hour
	case "day":
		d = time.Duration(n) * 24 * time.Hour
	case "week":
		d = time.Duration(n) * 7 * 24 * time.Hour
	case "month":
		d = time.Duration(n) * 30 * 24 * time.Hour
	default:
		return nil
	}

	t := now.Add(-d)
	return &t
}
