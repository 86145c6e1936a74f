package landuse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/zonechoice/matrix"
	"github.com/katalvlaran/zonechoice/zone"
)

// Format selects the layout of an OD CSV file.
type Format int

const (
	// ThirdNormalized rows are "origin,destination,value" (or "origin,value" for vectors).
	ThirdNormalized Format = iota
	// SquareMatrix has a header row of destinations and one row per origin.
	SquareMatrix
)

// ReadType selects how ThirdNormalized rows are interpreted.
type ReadType int

const (
	// AutoDetect treats 2-column rows as vector entries and 3+ as matrix entries.
	AutoDetect ReadType = iota
	// Vector reads "origin,value" and ignores extra columns.
	Vector
	// Matrix reads "origin,destination,value"; shorter rows are skipped.
	Matrix
)

// Record is one parsed OD observation. Destination is zone.NoZone for vector rows.
type Record struct {
	Origin, Destination int
	Value               float64
}

// CSVOptions configures ReadRecords.
type CSVOptions struct {
	Format Format
	// Header skips the first line. It only applies to ThirdNormalized;
	// SquareMatrix always has a destination header.
	Header   bool
	ReadType ReadType
}

// ReadRecords parses r into OD records following opts.
//
// Errors:
//   - ErrBadRecord for unparsable numbers, ErrEmptyFile when no data row is read.
func ReadRecords(r io.Reader, opts CSVOptions) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []Record
	var err error
	switch opts.Format {
	case SquareMatrix:
		out, err = readSquare(cr)
	default:
		out, err = readThirdNormalized(cr, opts)
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyFile
	}
	return out, nil
}

func atoi(row []string, col, line int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		return 0, fmt.Errorf("line %d column %d: %w", line, col+1, ErrBadRecord)
	}
	return v, nil
}

func atof(row []string, col, line int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d column %d: %w", line, col+1, ErrBadRecord)
	}
	return v, nil
}

func readThirdNormalized(cr *csv.Reader, opts CSVOptions) ([]Record, error) {
	var out []Record
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrBadRecord, err)
		}
		if line == 1 && opts.Header {
			continue
		}
		asMatrix := false
		switch opts.ReadType {
		case Vector:
			if len(row) < 2 {
				continue
			}
		case Matrix:
			if len(row) < 3 {
				continue
			}
			asMatrix = true
		default:
			if len(row) < 2 {
				continue
			}
			asMatrix = len(row) >= 3
		}

		rec := Record{}
		if rec.Origin, err = atoi(row, 0, line); err != nil {
			return nil, err
		}
		if asMatrix {
			if rec.Destination, err = atoi(row, 1, line); err != nil {
				return nil, err
			}
			if rec.Value, err = atof(row, 2, line); err != nil {
				return nil, err
			}
		} else if rec.Value, err = atof(row, 1, line); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

func readSquare(cr *csv.Reader) ([]Record, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w: %v", ErrBadRecord, err)
	}
	dests := make([]int, len(header)-1)
	for i := range dests {
		if dests[i], err = atoi(header, i+1, 1); err != nil {
			return nil, err
		}
	}
	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", line, ErrBadRecord, err)
		}
		if len(row) < len(dests)+1 {
			continue
		}
		o, err := atoi(row, 0, line)
		if err != nil {
			return nil, err
		}
		for i, d := range dests {
			v, err := atof(row, i+1, line)
			if err != nil {
				return nil, err
			}
			out = append(out, Record{Origin: o, Destination: d, Value: v})
		}
	}
}

func readFile(path string, opts CSVOptions) ([]Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", path, ErrFileNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := ReadRecords(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return recs, nil
}

// CSVVector loads a per-zone vector (flat-indexed) from an "origin,value" CSV.
// Zones absent from the file hold 0.
type CSVVector struct {
	state[[]float64]
	path   string
	header bool
	zones  *zone.System
}

// NewCSVVector creates an unloaded vector source.
func NewCSVVector(name, path string, header bool, zones *zone.System) *CSVVector {
	return &CSVVector{state: state[[]float64]{name: name}, path: path, header: header, zones: zones}
}

// Load implements Source.
func (c *CSVVector) Load() error {
	return c.load(func() ([]float64, error) {
		recs, err := readFile(c.path, CSVOptions{Format: ThirdNormalized, Header: c.header, ReadType: Vector})
		if err != nil {
			return nil, err
		}
		out := make([]float64, c.zones.Len())
		for _, r := range recs {
			i, err := c.zones.FlatIndex(r.Origin)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", c.path, err)
			}
			out[i] = r.Value
		}
		return out, nil
	})
}

// Unload implements Source.
func (c *CSVVector) Unload() { c.unload() }

// CSVMatrix loads an N×N zone-pair matrix. Pairs absent from the file hold 0.
type CSVMatrix struct {
	state[*matrix.Dense]
	path  string
	opts  CSVOptions
	zones *zone.System
}

// NewCSVMatrix creates an unloaded matrix source. ReadType is forced to Matrix
// for ThirdNormalized files.
func NewCSVMatrix(name, path string, opts CSVOptions, zones *zone.System) *CSVMatrix {
	if opts.Format == ThirdNormalized {
		opts.ReadType = Matrix
	}
	return &CSVMatrix{state: state[*matrix.Dense]{name: name}, path: path, opts: opts, zones: zones}
}

// Load implements Source.
func (c *CSVMatrix) Load() error {
	return c.load(func() (*matrix.Dense, error) {
		recs, err := readFile(c.path, c.opts)
		if err != nil {
			return nil, err
		}
		n := c.zones.Len()
		m, err := matrix.NewSquare(n)
		if err != nil {
			return nil, err
		}
		data := m.Data()
		for _, r := range recs {
			o, err := c.zones.FlatIndex(r.Origin)
			if err != nil {
				return nil, fmt.Errorf("%q origin: %w", c.path, err)
			}
			d, err := c.zones.FlatIndex(r.Destination)
			if err != nil {
				return nil, fmt.Errorf("%q destination: %w", c.path, err)
			}
			data[o*n+d] = r.Value
		}
		return m, nil
	})
}

// Unload implements Source.
func (c *CSVMatrix) Unload() { c.unload() }
