package pkg

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrFormat            = errors.New("date does not match \"<day>. <month> <year>\"")
	ErrLocaleUnavailable = errors.New("locale unavailable")
)

var datePattern = regexp.MustCompile(`^(\d{1,2})\.\s+(\S+)\s+(\d{4})$`)

// Locale maps month names of one language to their numbers. Lookups ignore
// case and Unicode normalization form.
type Locale struct {
	Name   string
	months map[string]time.Month
}

func NewLocale(name string, months map[string]time.Month) Locale {
	loc := Locale{Name: name, months: make(map[string]time.Month, len(months))}
	for month, n := range months {
		loc.months[fold(month)] = n
	}
	return loc
}

// German covers the de_DE month names.
var German = NewLocale("de_DE", map[string]time.Month{
	"Januar":    time.January,
	"Februar":   time.February,
	"März":      time.March,
	"April":     time.April,
	"Mai":       time.May,
	"Juni":      time.June,
	"Juli":      time.July,
	"August":    time.August,
	"September": time.September,
	"Oktober":   time.October,
	"November":  time.November,
	"Dezember":  time.December,
})

// Austrian is de_AT, which names January "Jänner".
var Austrian = NewLocale("de_AT", map[string]time.Month{
	"Jänner":    time.January,
	"Februar":   time.February,
	"März":      time.March,
	"April":     time.April,
	"Mai":       time.May,
	"Juni":      time.June,
	"Juli":      time.July,
	"August":    time.August,
	"September": time.September,
	"Oktober":   time.October,
	"November":  time.November,
	"Dezember":  time.December,
})

var locales = map[string]Locale{
	"de":          German,
	"de_de":       German,
	"de_de.utf-8": German,
	"de_de.utf8":  German,
	"de_at":       Austrian,
	"de_at.utf-8": Austrian,
	"de_at.utf8":  Austrian,
}

// LookupLocale resolves a POSIX-style locale name such as "de_DE.UTF-8".
func LookupLocale(name string) (Locale, error) {
	loc, ok := locales[strings.ToLower(name)]
	if !ok {
		return Locale{}, errors.Wrapf(ErrLocaleUnavailable, "%q", name)
	}
	return loc, nil
}

// Month returns the month named by name in loc.
func (loc Locale) Month(name string) (time.Month, bool) {
	m, ok := loc.months[fold(name)]
	return m, ok
}

// ParseDate parses a German date like "3. Januar 2024" into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(German, s)
}

// ParseDateIn parses s as "<day>. <month name> <year>" using the month names
// of loc. The day may be zero padded and must exist in the given month.
func ParseDateIn(loc Locale, s string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, errors.Wrapf(ErrFormat, "%q", s)
	}

	month, ok := loc.Month(m[2])
	if !ok {
		return time.Time{}, errors.Wrapf(ErrFormat, "%q: unknown %s month %q", s, loc.Name, m[2])
	}

	// both groups are all digits, Atoi cannot fail
	day, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[3])
	if year < 1 {
		return time.Time{}, errors.Wrapf(ErrFormat, "%q: year out of range", s)
	}
	if day < 1 || day > daysIn(month, year) {
		return time.Time{}, errors.Wrapf(ErrFormat, "%q: day out of range", s)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
