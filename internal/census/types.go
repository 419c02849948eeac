package census

import (
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrEmptyDataset is returned by statistics that need at least one record.
var ErrEmptyDataset = errors.New("census: empty dataset")

// UnknownLabel is the group label used for a missing categorical value.
const UnknownLabel = "Unknown"

// Salary brackets.
const (
	SalaryHigh = ">50K"
	SalaryLow  = "<=50K"
)

// Record is one census respondent. Column order matches the source file.
type Record struct {
	Age           int
	Workclass     pgtype.Text
	Fnlwgt        int
	Education     pgtype.Text
	EducationNum  int
	MaritalStatus pgtype.Text
	Occupation    pgtype.Text
	Relationship  pgtype.Text
	Race          pgtype.Text
	Sex           pgtype.Text
	CapitalGain   int
	CapitalLoss   int
	HoursPerWeek  int
	NativeCountry pgtype.Text
	Salary        pgtype.Text
}

// HighEarner reports whether the record is in the >50K bracket.
func (r Record) HighEarner() bool {
	return r.Salary.Valid && r.Salary.String == SalaryHigh
}

// Dataset is the full set of records for one analysis run.
// Nothing in this package modifies it.
type Dataset []Record

// GroupCount is a label and the number of records carrying it.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Result holds the ten summary statistics.
//
// Optional values use pgtype so "absent" is explicit and encodes as JSON
// null: MinWorkHours is invalid for an empty dataset, HighestEarningCountry
// when no record has a country, TopINOccupation when no high earner is from
// India.
type Result struct {
	Total int `json:"total"`

	RaceCount []GroupCount `json:"raceCount"`

	AverageAgeMen       float64 `json:"averageAgeMen"`
	PercentageBachelors float64 `json:"percentageBachelors"`

	HigherEducationRich float64 `json:"higherEducationRich"`
	LowerEducationRich  float64 `json:"lowerEducationRich"`

	MinWorkHours   pgtype.Int4 `json:"minWorkHours"`
	RichPercentage float64     `json:"richPercentage"`

	HighestEarningCountry           pgtype.Text `json:"highestEarningCountry"`
	HighestEarningCountryPercentage float64     `json:"highestEarningCountryPercentage"`

	TopINOccupation pgtype.Text `json:"topINOccupation"`
}
