package census

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"
)

// India is the country whose high earners TopINOccupation looks at.
const India = "India"

// Analyze computes every statistic over ds.
//
// It never fails. An empty dataset produces zero percentages, an empty race
// table and invalid MinWorkHours, HighestEarningCountry and TopINOccupation.
// MinWorkHours is also invalid when the minimum does not fit in an int32.
// ds is only read.
func Analyze(ds Dataset) Result {
	res := Result{
		Total:               len(ds),
		RaceCount:           RaceCount(ds),
		AverageAgeMen:       AverageAgeMen(ds),
		PercentageBachelors: PercentageBachelors(ds),
		HigherEducationRich: HigherEducationRich(ds),
		LowerEducationRich:  LowerEducationRich(ds),
		TopINOccupation:     TopOccupation(ds, India),
	}

	if lo, err := MinWorkHours(ds); err == nil {
		// Hours that do not fit an int4 are reported as absent.
		if lo <= math.MaxInt32 {
			res.MinWorkHours = pgtype.Int4{Int32: int32(lo), Valid: true}
		}
		res.RichPercentage = richShare(ds, func(r Record) bool { return r.HoursPerWeek == lo })
	}

	res.HighestEarningCountry, res.HighestEarningCountryPercentage = HighestEarningCountry(ds)

	return res
}
