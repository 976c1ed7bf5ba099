// Package harmonic decomposes a pulse waveform into its fundamental and ten
// integer harmonics (C0 to C10), each associated with a traditional
// pulse-diagnosis meridian, and derives a constitution label from the
// energy distribution.
//
// Each harmonic's share of the total energy is checked against one of two
// expected-range tables. The strict table is narrow and also tightens the
// tolerance multipliers; the normal table is wider. The constitution is the
// label of the first matching rule in a fixed priority list, and that order
// is part of the method: earlier rules take clinical precedence over later
// ones.
package harmonic
