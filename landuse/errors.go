package landuse

import "errors"

var (
	// ErrNotLoaded is returned when data is requested from an unloaded source.
	ErrNotLoaded = errors.New("landuse: source not loaded")

	// ErrFileNotFound is returned when a CSV source points at a missing file.
	ErrFileNotFound = errors.New("landuse: file does not exist")

	// ErrEmptyFile is returned when a CSV file yields no data rows.
	ErrEmptyFile = errors.New("landuse: no data was read")

	// ErrBadRecord is returned for a CSV row that cannot be parsed.
	ErrBadRecord = errors.New("landuse: malformed record")

	// ErrShape is returned when a source's data does not match the zone system.
	ErrShape = errors.New("landuse: data shape does not match zone system")
)
