// Package window generates the tapering windows applied before spectral
// transforms. The pulse pipeline uses the symmetric Hann window; the other
// types exist for comparison and tests.
package window
