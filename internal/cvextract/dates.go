package cvextract

import (
	"regexp"
	"strings"
)

// DateLayout is the format of extracted dates.
const DateLayout = "2006-01-02"

var (
	dateRangePattern  = regexp.MustCompile(`(?i)(\w+\s+\d{4})\s*[-–—]\s*(\w+\s+\d{4}|present|current)`)
	singleDatePattern = regexp.MustCompile(`\w+\s+\d{4}`)
	monthYearPattern  = regexp.MustCompile(`(\w+)\s+(\d{4})`)
)

var months = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05", "jun": "06",
	"jul": "07", "aug": "08", "sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// DateRange holds YYYY-MM-DD dates. An empty End means ongoing or unknown;
// an empty Start means no date was found.
type DateRange struct {
	Start string
	End   string
}

// ParseDates reads "<Month Year> - <Month Year|present|current>" and falls
// back to a single "<Month Year>" start.
func ParseDates(s string) DateRange {
	var r DateRange
	if m := dateRangePattern.FindStringSubmatch(s); m != nil {
		r.Start, _ = ParseMonthYear(m[1])
		end := strings.ToLower(m[2])
		if end != "present" && end != "current" {
			r.End, _ = ParseMonthYear(m[2])
		}
		return r
	}
	if m := singleDatePattern.FindString(s); m != "" {
		r.Start, _ = ParseMonthYear(m)
	}
	return r
}

// ParseMonthYear formats "<Month> <Year>" as YYYY-MM-01. The month is read
// from its first three letters; unknown months become January. ok is false
// when s has no month-year shape at all.
func ParseMonthYear(s string) (date string, ok bool) {
	m := monthYearPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	key := strings.ToLower(m[1])
	if len(key) > 3 {
		key = key[:3]
	}
	month, found := months[key]
	if !found {
		month = "01"
	}
	return m[2] + "-" + month + "-01", true
}
