// Package vitals runs one analysis tick over a sample window: motion check,
// POS/CHROM fusion, beat detection and HRV, SpO2, breathing rate, harmonic
// profile and stress classification.
//
// Each metric is optional. When a stage has too little or unusable data
// its field stays nil and the reason is recorded in [Report.Skipped], so a
// caller never receives a fabricated number. [Tracker] smooths heart rate
// across ticks with an IQR outlier filter.
package vitals
