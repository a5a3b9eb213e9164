// Package value provides the JSON value model produced by YAML conversion.
//
// A Value is one of null, boolean, number, string, array or object. Numbers
// are held as github.com/shopspring/decimal values so that large integers and
// long fractions survive conversion without rounding through float64.
//
// Objects keep the insertion order of their keys for stable output, but order
// carries no meaning: Equal compares objects as sets of members.
package value
