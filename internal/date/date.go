// Package date recognizes calendar dates embedded in arbitrary strings and
// normalizes them to year/month/day. The same month table and regex sources
// back the {D} match-pattern florb, so anything a {D} group captures can be
// normalized here.
package date

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Date is a calendar day. Zero fields mean "unknown".
type Date struct {
	Year  int
	Month int
	Day   int
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid reports whether the month and day fall in their calendar ranges.
// Day-of-month is not checked against the month length.
func (d Date) Valid() bool {
	return d.Year > 0 && d.Month >= 1 && d.Month <= 12 && d.Day >= 1 && d.Day <= 31
}

// ErrUnknownMonth is returned by Normalize when a human-readable date names a
// month that is not in the month table.
var ErrUnknownMonth = errors.New("unknown month name")

// monthTable maps lowercase month spellings to month numbers.
var monthTable = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may":  5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sept": 9, "sep": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// MonthNumber returns the month number for a full or abbreviated English
// month name, case-insensitively.
func MonthNumber(name string) (int, bool) {
	n, ok := monthTable[foldASCII(name)]
	return n, ok
}

// foldASCII lowercases name and maps every rune that case-folds to an ASCII
// letter onto it, the same equivalence the (?i) month regexes use ("ſ"
// matches "s").
func foldASCII(name string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII {
			return unicode.ToLower(r)
		}
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f < unicode.MaxASCII {
				return unicode.ToLower(f)
			}
		}
		return r
	}, name)
}

// monthAlternation is every month spelling, longest first, joined with "|".
var monthAlternation = func() string {
	names := make([]string, 0, len(monthTable))
	for name := range monthTable {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}()

// Regex sources without capturing groups. The separator between digit
// fields is any single non-alphanumeric character or nothing.
var (
	DigitPattern = `[0-9]{4}[^[:alnum:]]?[0-9]{2}[^[:alnum:]]?[0-9]{2}`
	HumanPattern = `[0-9]{1,2}\s+(?i:` + monthAlternation + `)\s+[0-9]{4}`
)

// Pattern returns a non-capturing regex source matching either date form.
func Pattern() string {
	return `(?:` + DigitPattern + `|` + HumanPattern + `)`
}

var (
	reDigitExact = regexp.MustCompile(
		`^([0-9]{4})[^[:alnum:]]?([0-9]{2})[^[:alnum:]]?([0-9]{2})$`)

	// \pL rather than [[:alpha:]]: (?i) month groups also match non-ASCII
	// case variants such as "ſ" for "s".
	reHumanExact = regexp.MustCompile(
		`^([0-9]{1,2})\s+(\pL+)\s+([0-9]{4})$`)

	reDigitFind = regexp.MustCompile(
		`(?:^|[^0-9])([0-9]{4})[^[:alnum:]]?([0-9]{2})[^[:alnum:]]?([0-9]{2})(?:[^0-9]|$)`)

	reHumanFind = regexp.MustCompile(
		`(?i)(?:^|[^0-9])([0-9]{1,2})\s+(` + monthAlternation + `)\s+([0-9]{4})(?:[^0-9]|$)`)

	reMonthFirstFind = regexp.MustCompile(
		`(?i)(?:^|[^[:alpha:]])(` + monthAlternation + `)\s+([0-9]{1,2}),?\s+([0-9]{4})(?:[^0-9]|$)`)
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Normalize converts a string that is exactly one date in either supported
// form (digits "YYYY[sep]MM[sep]DD" or human "D Month YYYY") into a Date.
// Range validation is not applied.
func Normalize(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if m := reDigitExact.FindStringSubmatch(s); m != nil {
		return Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}, nil
	}
	if m := reHumanExact.FindStringSubmatch(s); m != nil {
		month, ok := MonthNumber(m[2])
		if !ok {
			return Date{}, fmt.Errorf("%w: %q", ErrUnknownMonth, m[2])
		}
		return Date{Year: atoi(m[3]), Month: month, Day: atoi(m[1])}, nil
	}
	return Date{}, fmt.Errorf("not a date: %q", s)
}

// Find returns the leftmost valid date embedded in s. Digit dates,
// "D Month YYYY" and "Month D, YYYY" are recognized.
func Find(s string) (Date, bool) {
	best, bestAt := Date{}, -1
	consider := func(d Date, at int) {
		if d.Valid() && (bestAt < 0 || at < bestAt) {
			best, bestAt = d, at
		}
	}

	for _, loc := range reDigitFind.FindAllStringSubmatchIndex(s, -1) {
		consider(Date{
			Year:  atoi(s[loc[2]:loc[3]]),
			Month: atoi(s[loc[4]:loc[5]]),
			Day:   atoi(s[loc[6]:loc[7]]),
		}, loc[2])
	}
	for _, loc := range reHumanFind.FindAllStringSubmatchIndex(s, -1) {
		month, _ := MonthNumber(s[loc[4]:loc[5]])
		consider(Date{
			Year:  atoi(s[loc[6]:loc[7]]),
			Month: month,
			Day:   atoi(s[loc[2]:loc[3]]),
		}, loc[2])
	}
	for _, loc := range reMonthFirstFind.FindAllStringSubmatchIndex(s, -1) {
		month, _ := MonthNumber(s[loc[2]:loc[3]])
		consider(Date{
			Year:  atoi(s[loc[6]:loc[7]]),
			Month: month,
			Day:   atoi(s[loc[4]:loc[5]]),
		}, loc[2])
	}
	return best, bestAt >= 0
}
