package census

import (
	"math"
	"reflect"
	"testing"
)

func sampleDataset() Dataset {
	return dataset(
		person{age: 39, education: "Bachelors", race: "White", sex: "Male", hours: 40, country: "United-States", salary: SalaryLow, occupation: "Adm-clerical"},
		person{age: 50, education: "Bachelors", race: "White", sex: "Male", hours: 13, country: "United-States", salary: SalaryLow, occupation: "Exec-managerial"},
		person{age: 38, education: "HS-grad", race: "White", sex: "Male", hours: 40, country: "United-States", salary: SalaryLow, occupation: "Handlers-cleaners"},
		person{age: 53, education: "11th", race: "Black", sex: "Male", hours: 40, country: "United-States", salary: SalaryLow, occupation: "Handlers-cleaners"},
		person{age: 28, education: "Bachelors", race: "Black", sex: "Female", hours: 40, country: "Cuba", salary: SalaryLow, occupation: "Prof-specialty"},
		person{age: 37, education: "Masters", race: "White", sex: "Female", hours: 40, country: "United-States", salary: SalaryLow, occupation: "Exec-managerial"},
		person{age: 49, education: "9th", race: "Black", sex: "Female", hours: 16, country: "Jamaica", salary: SalaryLow, occupation: "Other-service"},
		person{age: 52, education: "HS-grad", race: "White", sex: "Male", hours: 45, country: "United-States", salary: SalaryHigh, occupation: "Exec-managerial"},
		person{age: 31, education: "Masters", race: "White", sex: "Female", hours: 50, country: "United-States", salary: SalaryHigh, occupation: "Prof-specialty"},
		person{age: 42, education: "Bachelors", race: "White", sex: "Male", hours: 40, country: "United-States", salary: SalaryHigh, occupation: "Exec-managerial"},
		person{age: 30, education: "Bachelors", race: "Asian-Pac-Islander", sex: "Male", hours: 40, country: India, salary: SalaryHigh, occupation: "Prof-specialty"},
		person{age: 23, education: "Bachelors", race: "White", sex: "Female", hours: 30, country: "United-States", salary: SalaryLow, occupation: "Adm-clerical"},
	)
}

func TestAnalyze(t *testing.T) {
	res := Analyze(sampleDataset())

	if res.Total != 12 {
		t.Errorf("Total = %d, want 12", res.Total)
	}

	wantRaces := []GroupCount{{"White", 8}, {"Black", 3}, {"Asian-Pac-Islander", 1}}
	if !reflect.DeepEqual(res.RaceCount, wantRaces) {
		t.Errorf("RaceCount = %v, want %v", res.RaceCount, wantRaces)
	}

	// Men: 39, 50, 38, 53, 52, 42, 30 -> 304 / 7 = 43.43
	if res.AverageAgeMen != 43.4 {
		t.Errorf("AverageAgeMen = %v, want 43.4", res.AverageAgeMen)
	}
	// 6 of 12 hold a Bachelors.
	if res.PercentageBachelors != 50.0 {
		t.Errorf("PercentageBachelors = %v, want 50.0", res.PercentageBachelors)
	}
	// Advanced: 6 Bachelors + 2 Masters, 3 rich -> 37.5
	if res.HigherEducationRich != 37.5 {
		t.Errorf("HigherEducationRich = %v, want 37.5", res.HigherEducationRich)
	}
	// Other: 4 records, 1 rich -> 25.0
	if res.LowerEducationRich != 25.0 {
		t.Errorf("LowerEducationRich = %v, want 25.0", res.LowerEducationRich)
	}
	if !res.MinWorkHours.Valid || res.MinWorkHours.Int32 != 13 {
		t.Errorf("MinWorkHours = %v, want 13", res.MinWorkHours)
	}
	if res.RichPercentage != 0.0 {
		t.Errorf("RichPercentage = %v, want 0.0", res.RichPercentage)
	}
	if res.HighestEarningCountry.String != India || res.HighestEarningCountryPercentage != 100.0 {
		t.Errorf("HighestEarningCountry = (%v, %v), want (India, 100)",
			res.HighestEarningCountry, res.HighestEarningCountryPercentage)
	}
	if res.TopINOccupation.String != "Prof-specialty" {
		t.Errorf("TopINOccupation = %v, want Prof-specialty", res.TopINOccupation)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	res := Analyze(Dataset{})

	if res.Total != 0 || len(res.RaceCount) != 0 {
		t.Errorf("Total = %d, RaceCount = %v, want zero values", res.Total, res.RaceCount)
	}
	if res.AverageAgeMen != 0 || res.PercentageBachelors != 0 ||
		res.HigherEducationRich != 0 || res.LowerEducationRich != 0 || res.RichPercentage != 0 {
		t.Errorf("expected all percentages to be 0, got %+v", res)
	}
	if res.MinWorkHours.Valid {
		t.Errorf("MinWorkHours = %v, want invalid", res.MinWorkHours)
	}
	if res.HighestEarningCountry.Valid || res.TopINOccupation.Valid {
		t.Errorf("expected absent country and occupation, got %v / %v",
			res.HighestEarningCountry, res.TopINOccupation)
	}
}

func TestAnalyze_HoursOutOfRange(t *testing.T) {
	ds := dataset(
		person{hours: math.MaxInt32 + 1, salary: SalaryHigh},
		person{hours: 1 << 40, salary: SalaryLow},
	)

	res := Analyze(ds)
	if res.MinWorkHours.Valid {
		t.Errorf("MinWorkHours = %+v, want invalid for a value beyond int32", res.MinWorkHours)
	}
	if res.RichPercentage != 100 {
		t.Errorf("RichPercentage = %v, want 100", res.RichPercentage)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	ds := sampleDataset()
	first := Analyze(ds)
	second := Analyze(ds)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyze_DoesNotModifyDataset(t *testing.T) {
	ds := sampleDataset()
	before := make(Dataset, len(ds))
	copy(before, ds)

	Analyze(ds)

	if !reflect.DeepEqual(ds, before) {
		t.Error("Analyze modified its input")
	}
}
