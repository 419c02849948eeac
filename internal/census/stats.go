package census

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/jackc/pgx/v5/pgtype"
)

// advancedEducation is the set of education levels counted as advanced.
var advancedEducation = map[string]bool{
	"Bachelors": true,
	"Masters":   true,
	"Doctorate": true,
}

// AdvancedEducation reports whether the record holds a Bachelors, Masters
// or Doctorate. A missing education is not advanced.
func AdvancedEducation(r Record) bool {
	return r.Education.Valid && advancedEducation[r.Education.String]
}

func isMale(r Record) bool {
	return r.Sex.Valid && r.Sex.String == "Male"
}

func labelOf(t pgtype.Text) string {
	if !t.Valid {
		return UnknownLabel
	}
	return t.String
}

// countBy groups records by key and counts them. Groups come back in the
// order their key first appeared.
func countBy(ds Dataset, key func(Record) string) []GroupCount {
	index := make(map[string]int)
	groups := make([]GroupCount, 0)

	for _, r := range ds {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupCount{Label: k})
		}
		groups[i].Count++
	}
	return groups
}

// richShare returns the percentage of high earners among records matching keep.
func richShare(ds Dataset, keep func(Record) bool) float64 {
	var rich, total int
	for _, r := range ds {
		if !keep(r) {
			continue
		}
		total++
		if r.HighEarner() {
			rich++
		}
	}
	return percent(rich, total)
}

// RaceCount counts records per race, largest group first. Equal counts keep
// first-appearance order. A missing race is counted under UnknownLabel.
func RaceCount(ds Dataset) []GroupCount {
	groups := countBy(ds, func(r Record) string { return labelOf(r.Race) })
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// AverageAgeMen is the mean age of male respondents, 0 if there are none.
func AverageAgeMen(ds Dataset) float64 {
	var sum, n int64
	for _, r := range ds {
		if isMale(r) {
			sum += int64(r.Age)
			n++
		}
	}
	return mean(sum, n)
}

// PercentageBachelors is the share of all records whose education is
// exactly Bachelors.
func PercentageBachelors(ds Dataset) float64 {
	var n int
	for _, r := range ds {
		if r.Education.Valid && r.Education.String == "Bachelors" {
			n++
		}
	}
	return percent(n, len(ds))
}

// HigherEducationRich is the share of high earners among records with
// advanced education.
func HigherEducationRich(ds Dataset) float64 {
	return richShare(ds, AdvancedEducation)
}

// LowerEducationRich is the share of high earners among records without
// advanced education.
func LowerEducationRich(ds Dataset) float64 {
	return richShare(ds, func(r Record) bool { return !AdvancedEducation(r) })
}

// MinWorkHours returns the smallest hours-per-week value in the dataset.
func MinWorkHours(ds Dataset) (int, error) {
	if len(ds) == 0 {
		return 0, ErrEmptyDataset
	}
	hours := make([]float64, len(ds))
	for i, r := range ds {
		hours[i] = float64(r.HoursPerWeek)
	}
	lo, _ := stats.Bounds(hours)
	return int(lo), nil
}

// RichPercentage is the share of high earners among the records that work
// the minimum number of hours.
func RichPercentage(ds Dataset) (float64, error) {
	lo, err := MinWorkHours(ds)
	if err != nil {
		return 0, err
	}
	return richShare(ds, func(r Record) bool { return r.HoursPerWeek == lo }), nil
}

type tally struct {
	rich, total int
}

// HighestEarningCountry returns the native country with the largest share
// of high earners and that share. Records without a country are ignored.
// Ties go to the alphabetically first country. The country is invalid when
// no record has one.
func HighestEarningCountry(ds Dataset) (pgtype.Text, float64) {
	tallies := make(map[string]*tally)
	for _, r := range ds {
		if !r.NativeCountry.Valid {
			continue
		}
		t, ok := tallies[r.NativeCountry.String]
		if !ok {
			t = &tally{}
			tallies[r.NativeCountry.String] = t
		}
		t.total++
		if r.HighEarner() {
			t.rich++
		}
	}

	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		best  string
		top   tally
		found bool
	)
	for _, name := range names {
		t := tallies[name]
		// rich/total > top.rich/top.total without leaving integers.
		if !found || t.rich*top.total > top.rich*t.total {
			best, top, found = name, *t, true
		}
	}
	if !found {
		return pgtype.Text{}, 0
	}
	return pgtype.Text{String: best, Valid: true}, percent(top.rich, top.total)
}

// TopOccupation returns the most common occupation among high earners from
// country. Ties go to the alphabetically first occupation; a missing
// occupation competes as UnknownLabel. The result is invalid when no high
// earner is from country.
func TopOccupation(ds Dataset, country string) pgtype.Text {
	earners := filter(ds, func(r Record) bool {
		return r.NativeCountry.Valid && r.NativeCountry.String == country && r.HighEarner()
	})
	groups := countBy(earners, func(r Record) string { return labelOf(r.Occupation) })
	if len(groups) == 0 {
		return pgtype.Text{}
	}

	best := groups[0]
	for _, g := range groups[1:] {
		if g.Count > best.Count || (g.Count == best.Count && g.Label < best.Label) {
			best = g
		}
	}
	return pgtype.Text{String: best.Label, Valid: true}
}

func filter(ds Dataset, keep func(Record) bool) Dataset {
	out := make(Dataset, 0)
	for _, r := range ds {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
