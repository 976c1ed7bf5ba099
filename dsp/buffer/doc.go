// Package buffer provides the bounded sliding window that accumulates
// camera frames before analysis. Snapshots are deep copies so analysis can
// run while new frames keep arriving.
package buffer
