package pkg

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Reading is a single value observed on a calendar day.
type Reading struct {
	Time  time.Time
	Value float64
}

// ReadReadings reads rows of the form "3. Januar 2024;12,5". Lines starting
// with '#' are skipped.
func ReadReadings(r io.Reader) ([]Reading, error) {
	return ReadReadingsIn(German, r)
}

// ReadReadingsIn is ReadReadings with dates in the month names of loc.
func ReadReadingsIn(loc Locale, r io.Reader) ([]Reading, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var readings []Reading
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return readings, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "read readings")
		}
		line, _ := cr.FieldPos(0)

		t, err := ParseDateIn(loc, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		val, err := ParseValue(record[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		readings = append(readings, Reading{Time: t, Value: val})
	}
}

var ErrValue = errors.New("value is not a finite decimal number")

// ParseValue accepts both "12.5" and the German "12,5". NaN, infinities and
// hex floats are rejected.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, errors.Wrapf(ErrValue, "%q", s)
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "value %q", s)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, errors.Wrapf(ErrValue, "%q", s)
	}
	return val, nil
}
