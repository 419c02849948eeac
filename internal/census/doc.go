// Package census computes the fixed demographic summary of the census
// ("adult") dataset.
//
// The package has no I/O. Callers hand [Analyze] an already loaded
// [Dataset] and get back an immutable [Result]. Every statistic is also
// exposed as its own function so it can be computed and tested in
// isolation:
//
//	ds, _, err := dataset.LoadFile(ctx, "adult.data.csv", 100<<20)
//	if err != nil {
//	    return err
//	}
//	res := census.Analyze(ds)
//
// # Missing values
//
// Categorical columns are [pgtype.Text] and may be invalid (the source
// file spells missing as "?"). Each statistic handles that explicitly:
//
//   - race and occupation: grouped under [UnknownLabel]
//   - native country: excluded from the country ranking
//   - education: counts as non-advanced
//   - salary: never a high earner
//   - sex: never male
//
// # Rounding
//
// Averages and percentages are computed as exact decimals and rounded to
// one place, half away from zero (12.25 -> 12.3, 33.333 -> 33.3).
//
// # Determinism
//
// Grouped output never depends on map iteration order. Race counts are
// ordered by count with ties kept in first-appearance order; argmax
// ties (country, occupation) go to the lexicographically smallest label.
package census
