package census

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percent returns part/total*100 rounded to one decimal place.
// A zero total yields 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return round1(d)
}

// mean returns sum/n rounded to one decimal place. A zero n yields 0.
func mean(sum, n int64) float64 {
	if n == 0 {
		return 0
	}
	return round1(decimal.NewFromInt(sum).Div(decimal.NewFromInt(n)))
}

// round1 rounds half away from zero.
func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}
