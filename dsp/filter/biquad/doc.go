// Package biquad runs the second-order IIR sections used by the pulse
// filter bank and evaluates their frequency response. Coefficient design
// lives in dsp/filter/design.
package biquad
