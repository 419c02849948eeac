// Package dataset loads the census table from a CSV file or PostgreSQL and
// hands it to the aggregator as a clean census.Dataset.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a header row lacks one of the schema columns.
var ErrMissingColumn = errors.New("missing required column")

// Column identifies one of the fixed schema columns.
type Column int

const (
	ColAge Column = iota
	ColWorkclass
	ColFnlwgt
	ColEducation
	ColEducationNum
	ColMaritalStatus
	ColOccupation
	ColRelationship
	ColRace
	ColSex
	ColCapitalGain
	ColCapitalLoss
	ColHoursPerWeek
	ColNativeCountry
	ColSalary

	NumColumns
)

// columnNames are the header names used by the published dataset.
var columnNames = [NumColumns]string{
	"age",
	"workclass",
	"fnlwgt",
	"education",
	"education-num",
	"marital-status",
	"occupation",
	"relationship",
	"race",
	"sex",
	"capital-gain",
	"capital-loss",
	"hours-per-week",
	"native-country",
	"salary",
}

func (c Column) String() string {
	if c < 0 || c >= NumColumns {
		return "unknown"
	}
	return columnNames[c]
}

// DBColumn is the column's name in the PostgreSQL table.
func (c Column) DBColumn() string {
	return strings.ReplaceAll(c.String(), "-", "_")
}

// Columns returns the schema columns in file order.
func Columns() []Column {
	cols := make([]Column, NumColumns)
	for i := range cols {
		cols[i] = Column(i)
	}
	return cols
}

// columnIndex maps each schema column to its position in a CSV row.
type columnIndex [NumColumns]int

// positionalIndex is used for files without a header row.
func positionalIndex() columnIndex {
	var idx columnIndex
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// normalizeHeader folds "Hours_Per_Week", "hours per week" and
// "hours-per-week" to the same key.
func normalizeHeader(h string) string {
	h = strings.ToLower(CleanCell(h))
	h = strings.ReplaceAll(h, "_", "-")
	h = strings.ReplaceAll(h, " ", "-")
	return h
}

// isHeader reports whether row looks like the dataset's header line.
func isHeader(row []string) bool {
	return len(row) > 0 && normalizeHeader(row[0]) == columnNames[ColAge]
}

// headerIndex builds a columnIndex from a header row. Unknown columns are
// ignored; every schema column must be present.
func headerIndex(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[normalizeHeader(h)] = i
	}

	var idx columnIndex
	var missing []string
	for _, c := range Columns() {
		i, ok := pos[c.String()]
		if !ok {
			missing = append(missing, c.String())
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// width is the minimum number of cells a row needs for idx.
func (idx columnIndex) width() int {
	w := 0
	for _, i := range idx {
		if i+1 > w {
			w = i + 1
		}
	}
	return w
}
