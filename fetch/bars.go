package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/somwatee/HATS-v4/shared"
	"github.com/tidwall/gjson"
)

// parseTime parses bar timestamps in the supported layouts: the shared date
// layout, RFC 3339 and unix seconds.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	dt, err := time.Parse(shared.DateLayout, s)
	if err == nil {
		return dt, nil
	}

	dt, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return dt, nil
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unknown time format: %q", s)
}

// firstOf returns the first existing field of the provided names.
func firstOf(data gjson.Result, names ...string) gjson.Result {
	for _, name := range names {
		field := data.Get(name)
		if field.Exists() {
			return field
		}
	}

	return gjson.Result{}
}

// ParseBars parses bars from the provided json data.
func ParseBars(data []gjson.Result) ([]shared.Bar, error) {
	bars := make([]shared.Bar, len(data))

	for idx := range data {
		date := firstOf(data[idx], "date", "time")
		if !date.Exists() {
			return nil, fmt.Errorf("bar %d has no date", idx)
		}

		var dt time.Time
		var err error
		switch date.Type {
		case gjson.Number:
			dt = time.Unix(date.Int(), 0).UTC()
		default:
			dt, err = parseTime(date.String())
			if err != nil {
				return nil, fmt.Errorf("parsing bar %d date: %w", idx, err)
			}
		}

		bars[idx] = shared.Bar{
			Date:   dt,
			Open:   data[idx].Get("open").Float(),
			High:   data[idx].Get("high").Float(),
			Low:    data[idx].Get("low").Float(),
			Close:  data[idx].Get("close").Float(),
			Volume: firstOf(data[idx], "volume", "tick_volume").Float(),
		}
	}

	return bars, nil
}

// loadJSONBars loads bars from a json array or an object holding a bars array.
func loadJSONBars(b []byte) ([]shared.Bar, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("invalid json")
	}

	root := gjson.ParseBytes(b)
	if !root.IsArray() {
		root = root.Get("bars")
		if !root.IsArray() {
			return nil, fmt.Errorf("no bars array found")
		}
	}

	return ParseBars(root.Array())
}

// csvColumns maps the required bar fields to their csv header aliases.
var csvColumns = map[string][]string{
	"time":   {"time", "date"},
	"open":   {"open"},
	"high":   {"high"},
	"low":    {"low"},
	"close":  {"close"},
	"volume": {"tick_volume", "volume"},
}

// loadCSVBars loads bars from csv data with a header row.
func loadCSVBars(r io.Reader) ([]shared.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	positions := make(map[string]int, len(header))
	for idx, name := range header {
		positions[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	columns := make(map[string]int, len(csvColumns))
	for field, aliases := range csvColumns {
		for _, alias := range aliases {
			pos, ok := positions[alias]
			if ok {
				columns[field] = pos
				break
			}
		}

		if _, ok := columns[field]; !ok {
			return nil, fmt.Errorf("csv header is missing the %s column", field)
		}
	}

	bars := []shared.Bar{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		dt, err := parseTime(record[columns["time"]])
		if err != nil {
			return nil, fmt.Errorf("parsing csv line %d time: %w", line, err)
		}

		values := make(map[string]float64, 5)
		for _, field := range []string{"open", "high", "low", "close", "volume"} {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[columns[field]]), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing csv line %d %s: %w", line, field, err)
			}
			values[field] = v
		}

		bars = append(bars, shared.Bar{
			Date:   dt,
			Open:   values["open"],
			High:   values["high"],
			Low:    values["low"],
			Close:  values["close"],
			Volume: values["volume"],
		})
	}

	return bars, nil
}

// LoadBars loads bars from the provided json or csv file. Bars are returned in
// file order.
func LoadBars(path string) ([]shared.Bar, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading bars from file with path '%s': %w", path, err)
		}

		bars, err := loadJSONBars(b)
		if err != nil {
			return nil, fmt.Errorf("parsing json bars from '%s': %w", path, err)
		}

		return bars, nil

	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening bars file with path '%s': %w", path, err)
		}
		defer f.Close()

		bars, err := loadCSVBars(f)
		if err != nil {
			return nil, fmt.Errorf("parsing csv bars from '%s': %w", path, err)
		}

		return bars, nil

	default:
		return nil, fmt.Errorf("unsupported bars file extension: %q", filepath.Ext(path))
	}
}
