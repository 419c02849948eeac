package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/census/internal/census"
)

const header = "age,workclass,fnlwgt,education,education-num,marital-status,occupation,relationship,race,sex,capital-gain,capital-loss,hours-per-week,native-country,salary"

func TestLoadFile_Sample(t *testing.T) {
	ds, stats, err := LoadFile(context.Background(), filepath.Join("testdata", "adult_sample.csv"), 0)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if stats.Rows != 13 || len(ds) != 13 {
		t.Errorf("rows = %d (dataset %d), want 13", stats.Rows, len(ds))
	}
	// cross-validator banner, "malformed line" and the non-numeric fnlwgt
	if stats.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", stats.Skipped)
	}
	if stats.Header {
		t.Error("Header = true, want false")
	}
	if stats.BytesRead == 0 {
		t.Error("BytesRead = 0, want > 0")
	}

	first := ds[0]
	if first.Age != 39 || first.Workclass.String != "State-gov" || first.CapitalGain != 2174 ||
		first.HoursPerWeek != 40 || first.Salary.String != census.SalaryLow {
		t.Errorf("first record = %+v", first)
	}

	last := ds[len(ds)-1]
	if last.Workclass.Valid || last.Occupation.Valid {
		t.Errorf("missing values should be invalid, got workclass=%v occupation=%v", last.Workclass, last.Occupation)
	}
	if last.Salary.String != census.SalaryHigh {
		t.Errorf("salary = %q, want %q", last.Salary.String, census.SalaryHigh)
	}
}

func TestLoadFile_Analyze(t *testing.T) {
	ds, _, err := LoadFile(context.Background(), filepath.Join("testdata", "adult_sample.csv"), 0)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	res := census.Analyze(ds)

	if len(res.RaceCount) != 3 || res.RaceCount[0].Label != "White" || res.RaceCount[0].Count != 8 ||
		res.RaceCount[2].Label != "Asian-Pac-Islander" || res.RaceCount[2].Count != 2 {
		t.Errorf("RaceCount = %v", res.RaceCount)
	}
	// 358 / 8 = 44.75
	if res.AverageAgeMen != 44.8 {
		t.Errorf("AverageAgeMen = %v, want 44.8", res.AverageAgeMen)
	}
	if res.PercentageBachelors != 46.2 {
		t.Errorf("PercentageBachelors = %v, want 46.2", res.PercentageBachelors)
	}
	if res.HigherEducationRich != 37.5 || res.LowerEducationRich != 40.0 {
		t.Errorf("education rich = %v / %v, want 37.5 / 40.0", res.HigherEducationRich, res.LowerEducationRich)
	}
	if res.MinWorkHours.Int32 != 13 || res.RichPercentage != 0 {
		t.Errorf("min hours = %v (%v%%), want 13 (0%%)", res.MinWorkHours, res.RichPercentage)
	}
	// India and South both at 100%; India sorts first.
	if res.HighestEarningCountry.String != "India" || res.HighestEarningCountryPercentage != 100 {
		t.Errorf("HighestEarningCountry = %v (%v)", res.HighestEarningCountry, res.HighestEarningCountryPercentage)
	}
	if res.TopINOccupation.String != "Prof-specialty" {
		t.Errorf("TopINOccupation = %v", res.TopINOccupation)
	}
}

func TestReadCSV_Header(t *testing.T) {
	input := "\xEF\xBB\xBF" + header + "\n" +
		"39,State-gov,77516,Bachelors,13,Never-married,Adm-clerical,Not-in-family,White,Male,2174,0,40,United-States,<=50K\n" +
		"31,Private,45781,Masters,14,Never-married,Prof-specialty,Not-in-family,White,Female,14084,0,50,?,>50K\n"

	ds, stats, err := ReadCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !stats.Header {
		t.Error("Header = false, want true")
	}
	if len(ds) != 2 || stats.Skipped != 0 {
		t.Fatalf("rows = %d, skipped = %d, want 2, 0", len(ds), stats.Skipped)
	}
	if ds[1].NativeCountry.Valid {
		t.Errorf("NativeCountry = %v, want missing", ds[1].NativeCountry)
	}
}

func TestReadCSV_HeaderReordered(t *testing.T) {
	input := "salary,Hours_Per_Week,native country,age,workclass,fnlwgt,education,education-num,marital-status,occupation,relationship,race,sex,capital-gain,capital-loss,extra\n" +
		">50K,45,Canada,52,Private,1,Doctorate,16,Divorced,Sales,Unmarried,Other,Female,0,0,ignored\n"

	ds, _, err := ReadCSV(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("rows = %d, want 1", len(ds))
	}

	r := ds[0]
	if r.Age != 52 || r.HoursPerWeek != 45 || r.NativeCountry.String != "Canada" ||
		r.Salary.String != census.SalaryHigh || r.Education.String != "Doctorate" {
		t.Errorf("record = %+v", r)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	input := "age,workclass,education\n39,State-gov,Bachelors\n"

	_, _, err := ReadCSV(context.Background(), strings.NewReader(input))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("ReadCSV() error = %v, want ErrMissingColumn", err)
	}
	if !strings.Contains(err.Error(), "hours-per-week") {
		t.Errorf("error should name missing columns: %v", err)
	}
}

func TestReadCSV_SkipsMalformed(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"too few columns", "39, State-gov, 77516"},
		{"too many columns", "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K, extra"},
		{"missing age", "?, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K"},
		{"negative hours", "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, -5, United-States, <=50K"},
		{"decimal hours", "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40.5, United-States, <=50K"},
		{"hours beyond int32", "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 1099511627776, United-States, <=50K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, stats, err := ReadCSV(context.Background(), strings.NewReader(tt.row+"\n"))
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			if len(ds) != 0 || stats.Skipped != 1 {
				t.Errorf("rows = %d, skipped = %d, want 0, 1", len(ds), stats.Skipped)
			}
		})
	}
}

func TestReadCSV_Empty(t *testing.T) {
	ds, stats, err := ReadCSV(context.Background(), strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds == nil || len(ds) != 0 || stats.Rows != 0 {
		t.Errorf("got %v (%+v), want empty dataset", ds, stats)
	}
}

func TestReadCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ReadCSV(ctx, strings.NewReader(header+"\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ReadCSV() error = %v, want context.Canceled", err)
	}
}

func TestReadCSV_NonPositiveCheckInterval(t *testing.T) {
	prev := ContextCheckInterval
	t.Cleanup(func() { ContextCheckInterval = prev })

	row := "39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K\n"
	for _, interval := range []int{0, -1} {
		ContextCheckInterval = interval

		ds, _, err := ReadCSV(context.Background(), strings.NewReader(row+row))
		if err != nil {
			t.Fatalf("interval %d: ReadCSV() error = %v", interval, err)
		}
		if len(ds) != 2 {
			t.Errorf("interval %d: rows = %d, want 2", interval, len(ds))
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, _, err := LoadFile(context.Background(), filepath.Join("testdata", "does-not-exist.csv"), 0); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}

	_, _, err := LoadFile(context.Background(), filepath.Join("testdata", "adult_sample.csv"), 10)
	if err == nil || !strings.Contains(err.Error(), "file too large") {
		t.Errorf("LoadFile(maxSize=10) error = %v, want file too large", err)
	}

	if _, _, err := LoadFile(context.Background(), "testdata", 0); err == nil {
		t.Error("LoadFile(directory) expected error")
	}
}
