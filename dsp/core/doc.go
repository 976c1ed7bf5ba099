// Package core holds the value types and helpers shared by every rPPG stage:
// the synchronized R/G/B [SampleWindow], sample-rate derivation, numeric
// helpers and the error taxonomy that distinguishes "not enough data" from
// degenerate or implausible signals.
//
// Nothing in this package keeps state between calls. Callers own their
// windows and must hand a frozen copy to the analysis stages.
package core
