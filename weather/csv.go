package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// csvColumns is the expected header of a tabular weather export:
// date (ISO8601), day of year, mean temperature °C, mean relative
// humidity %, daily rainfall mm, latitude, longitude.
var csvColumns = []string{"date", "doy", "tmean", "rhmean", "rain", "lat", "lon"}

// FromCSV reads a weather series from a tabular export. The first row
// must be the header. Rows are returned in file order; callers should
// run Validate before simulating.
func FromCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var series Series
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		day, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		series = append(series, day)
		row++
	}

	return series, nil
}

func checkHeader(header []string) error {
	if len(header) != len(csvColumns) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(csvColumns))
	}
	for i, col := range csvColumns {
		if header[i] != col {
			return fmt.Errorf("header column %d is %q, want %q", i, header[i], col)
		}
	}
	return nil
}

func parseRow(rec []string) (Day, error) {
	var day Day

	date, err := time.Parse("2006-01-02", rec[0])
	if err != nil {
		return day, fmt.Errorf("parse date %q: %w", rec[0], err)
	}
	day.Date = date

	doy, err := strconv.Atoi(rec[1])
	if err != nil {
		return day, fmt.Errorf("parse doy %q: %w", rec[1], err)
	}
	day.DayOfYear = doy

	fields := []struct {
		name string
		dst  *float64
	}{
		{"tmean", &day.TempMean},
		{"rhmean", &day.RHMean},
		{"rain", &day.Rainfall},
		{"lat", &day.Latitude},
		{"lon", &day.Longitude},
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(rec[i+2], 64)
		if err != nil {
			return day, fmt.Errorf("parse %s %q: %w", f.name, rec[i+2], err)
		}
		*f.dst = v
	}

	return day, nil
}
