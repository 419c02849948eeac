package dataset

// convert.go turns raw CSV cells into typed record fields.
//
// The source file pads every value with a leading space, marks missing
// values with "?" and, in the test split, ends salary brackets with a dot
// (">50K."). All of that is cleaned here so the aggregator only ever sees
// well-typed values.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/census/internal/census"
	"github.com/jackc/pgx/v5/pgtype"
)

// MissingToken marks an absent value in the source file.
const MissingToken = "?"

// CleanCell trims whitespace and surrounding quotes from a cell.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// ToText converts a cell to pgtype.Text. Empty cells and the missing token
// are invalid.
func ToText(s string) pgtype.Text {
	s = CleanCell(s)
	if s == "" || s == MissingToken {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToSalary is ToText with the trailing dot of the test split removed.
func ToSalary(s string) pgtype.Text {
	return ToText(strings.TrimSuffix(CleanCell(s), "."))
}

// rowParser reads typed fields out of one CSV row. The first failure is
// kept in err and later calls become no-ops.
type rowParser struct {
	row []string
	idx columnIndex
	err error
}

func (p *rowParser) cell(c Column) string {
	return p.row[p.idx[c]]
}

func (p *rowParser) text(c Column) pgtype.Text {
	if p.err != nil {
		return pgtype.Text{}
	}
	return ToText(p.cell(c))
}

// count parses a non-negative int32 column.
func (p *rowParser) count(c Column) int {
	if p.err != nil {
		return 0
	}
	raw := CleanCell(p.cell(c))
	// Values are stored as INTEGER, so they must fit in 32 bits.
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		p.err = fmt.Errorf("invalid integer for %q: %q", c, raw)
		return 0
	}
	n := int(v)
	if n < 0 {
		p.err = fmt.Errorf("negative value for %q: %d", c, n)
		return 0
	}
	return n
}

// buildRecord converts a row to a census.Record. The row must be at least
// idx.width() cells wide.
func buildRecord(row []string, idx columnIndex) (census.Record, error) {
	p := &rowParser{row: row, idx: idx}

	rec := census.Record{
		Age:           p.count(ColAge),
		Workclass:     p.text(ColWorkclass),
		Fnlwgt:        p.count(ColFnlwgt),
		Education:     p.text(ColEducation),
		EducationNum:  p.count(ColEducationNum),
		MaritalStatus: p.text(ColMaritalStatus),
		Occupation:    p.text(ColOccupation),
		Relationship:  p.text(ColRelationship),
		Race:          p.text(ColRace),
		Sex:           p.text(ColSex),
		CapitalGain:   p.count(ColCapitalGain),
		CapitalLoss:   p.count(ColCapitalLoss),
		HoursPerWeek:  p.count(ColHoursPerWeek),
		NativeCountry: p.text(ColNativeCountry),
	}
	if p.err != nil {
		return census.Record{}, p.err
	}
	rec.Salary = ToSalary(p.cell(ColSalary))

	return rec, nil
}
