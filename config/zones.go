package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/zonechoice/zone"
)

// ReadZones parses a zone CSV: a header row, then zone, planning district,
// population and optional x, y columns.
func ReadZones(r io.Reader) ([]zone.Zone, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty zone file", ErrInvalid)
		}
		return nil, err
	}

	var out []zone.Zone
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("%w: zone file line %d has %d columns", ErrInvalid, line, len(row))
		}
		vals := make([]float64, 5)
		for c := 0; c < len(row) && c < 5; c++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: zone file line %d column %d: %v", ErrInvalid, line, c+1, err)
			}
			vals[c] = v
		}
		out = append(out, zone.Zone{
			Number:           int(vals[0]),
			PlanningDistrict: int(vals[1]),
			Population:       vals[2],
			X:                vals[3],
			Y:                vals[4],
		})
	}
}

func readZoneFile(path string) ([]zone.Zone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("zones: %w", err)
	}
	defer f.Close()
	zs, err := ReadZones(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return zs, nil
}
