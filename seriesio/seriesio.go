// Package seriesio loads time-series segments from CSV files and generates
// synthetic demo data.
package seriesio

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadCSV reads a single series from a CSV file. Accepted layouts: a single
// numeric column with or without a header row, or multiple columns with a
// "value" header naming the column to read.
func ReadCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("seriesio: reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seriesio: %s is empty", path)
	}

	col := 0
	start := 0
	first := records[0]
	if _, err := parseField(first[0]); err != nil {
		// Non-numeric first row: treat as a header.
		start = 1
		if len(first) > 1 {
			col = -1
			for i, name := range first {
				if strings.EqualFold(strings.TrimSpace(name), "value") {
					col = i
					break
				}
			}
			if col < 0 {
				return nil, fmt.Errorf("seriesio: %s has %d columns and no value column", path, len(first))
			}
		}
	} else if len(first) > 1 {
		return nil, fmt.Errorf("seriesio: %s has %d columns; expected 1 or a value header", path, len(first))
	}

	values := make([]float64, 0, len(records)-start)
	for i, rec := range records[start:] {
		if col >= len(rec) {
			return nil, fmt.Errorf("seriesio: %s row %d has %d fields, need column %d", path, start+i+1, len(rec), col+1)
		}
		v, err := parseField(rec[col])
		if err != nil {
			return nil, fmt.Errorf("seriesio: %s row %d: %w", path, start+i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// LoadDir recursively loads every *.csv file under dir into a map keyed by
// file stem. Files that fail to parse or hold fewer than minLen samples are
// skipped rather than failing the whole load; a missing or empty directory
// yields an empty map.
func LoadDir(dir string, minLen int) (map[string][]float64, error) {
	series := make(map[string][]float64)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		values, err := ReadCSV(path)
		if err != nil || len(values) < minLen {
			return nil // skip unreadable or too-short files
		}
		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		series[stem] = values
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return series, nil
		}
		return nil, fmt.Errorf("seriesio: walking %s: %w", dir, err)
	}
	return series, nil
}

// Synthetic generates n demo series of the given length from three
// archetypes — a sine, a square-ish wave and a noisy ramp — plus gaussian
// noise. Ids are synth_0000 through synth_<n-1>. Output is reproducible for
// a fixed seed.
func Synthetic(n, length int, seed int64) map[string][]float64 {
	if n <= 0 || length < 2 {
		return map[string][]float64{}
	}
	rng := rand.New(rand.NewSource(seed))

	t := make([]float64, length)
	for j := range t {
		t[j] = 2 * math.Pi * float64(j) / float64(length-1)
	}

	archetypes := make([][]float64, 3)
	for k := range archetypes {
		archetypes[k] = make([]float64, length)
	}
	for j, tj := range t {
		archetypes[0][j] = math.Sin(tj)
		archetypes[1][j] = sign(math.Sin(3*tj))*0.5 + 0.2*math.Sin(7*tj)
		ramp := -1 + 2*float64(j)/float64(length-1)
		archetypes[2][j] = ramp + 0.1*math.Sin(5*tj)
	}

	series := make(map[string][]float64, n)
	for i := 0; i < n; i++ {
		base := archetypes[i%3]
		x := make([]float64, length)
		for j := range x {
			x[j] = base[j] + 0.15*rng.NormFloat64()
		}
		series[fmt.Sprintf("synth_%04d", i)] = x
	}
	return series
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
