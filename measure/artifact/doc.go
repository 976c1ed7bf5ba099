// Package artifact conditions raw R/G/B traces before pulse extraction:
// ambient-light compensation and a motion detector that flags windows with
// large frame-to-frame jumps.
package artifact
