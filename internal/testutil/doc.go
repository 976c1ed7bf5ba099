// Package testutil holds deterministic signal generators and tolerance
// helpers shared by the package tests.
package testutil
