// Package design provides digital IIR coefficient designers for the pulse
// filter bank.
//
// [ButterworthBandpass] maps the first-order Butterworth lowpass prototype to
// a bandpass and discretizes it with the bilinear transform, pre-warping
// both band edges with tan(pi*f/fs) so the -3 dB points land exactly on the
// requested frequencies.
package design
