package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/census/internal/census"
	"github.com/JonMunkholm/census/internal/logging"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ContextCheckInterval is how often (in rows) ReadCSV checks for
// cancellation. Values below 1 mean every row.
var ContextCheckInterval = 1000

// LoadStats describes what a load did with its input.
type LoadStats struct {
	Rows      int   // records kept
	Skipped   int   // malformed rows discarded
	BytesRead int64 // bytes consumed from the source
	Header    bool  // whether a header row was found
}

// countingReader tracks bytes read for LoadStats.
type countingReader struct {
	reader    io.Reader
	bytesRead int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.bytesRead += int64(n)
	return n, err
}

// sanitize strips a UTF-8 BOM and replaces invalid UTF-8 with U+FFFD.
func sanitize(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// ReadCSV parses the census CSV format from r.
//
// The first row is treated as a header when its first cell is "age";
// columns are then matched by name. Otherwise the fixed column order is
// assumed. Rows with the wrong number of cells or unparsable numbers are
// skipped and counted in LoadStats.Skipped. Blank lines are ignored.
//
// An input with no data rows yields an empty Dataset, not an error.
func ReadCSV(ctx context.Context, r io.Reader) (census.Dataset, LoadStats, error) {
	var stats LoadStats
	logger := logging.FromContext(ctx)

	counter := &countingReader{reader: r}
	reader := csv.NewReader(sanitize(counter))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	idx := positionalIndex()
	exact := true // positional rows must have exactly NumColumns cells
	ds := make(census.Dataset, 0)

	interval := ContextCheckInterval
	if interval <= 0 {
		interval = 1
	}

	for line := 0; ; line++ {
		if line%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, fmt.Errorf("read cancelled at record %d: %w", line, err)
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				logger.Debug("skipping unparsable row", "line", parseErr.Line, "error", parseErr.Err)
				continue
			}
			return nil, stats, fmt.Errorf("read csv: %w", err)
		}

		if line == 0 && isHeader(row) {
			idx, err = headerIndex(row)
			if err != nil {
				return nil, stats, err
			}
			stats.Header = true
			exact = false
			continue
		}

		fileLine, _ := reader.FieldPos(0)

		if (exact && len(row) != int(NumColumns)) || len(row) < idx.width() {
			stats.Skipped++
			logger.Debug("skipping row with wrong column count",
				"line", fileLine, "columns", len(row), "expected", int(NumColumns))
			continue
		}

		rec, err := buildRecord(row, idx)
		if err != nil {
			stats.Skipped++
			logger.Debug("skipping malformed row", "line", fileLine, "error", err)
			continue
		}
		ds = append(ds, rec)
	}

	stats.Rows = len(ds)
	stats.BytesRead = counter.bytesRead
	return ds, stats, nil
}

// LoadFile reads the census CSV at path. Files larger than maxSize bytes
// are rejected; a maxSize of 0 disables the check.
func LoadFile(ctx context.Context, path string, maxSize int64) (census.Dataset, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return nil, LoadStats{}, fmt.Errorf("open dataset: %s is a directory", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, LoadStats{}, fmt.Errorf("file too large: %s is %d bytes, limit is %d", path, info.Size(), maxSize)
	}

	ds, stats, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, stats, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, stats, nil
}
