// Package robust rejects outliers from short series of estimates, such as
// the heart rates produced by successive pipeline ticks.
package robust
