// Package time provides the time-domain statistics (mean, population
// standard deviation) used throughout the pulse pipeline.
//
// Standard deviations are population (divide-by-n) statistics.
package time
