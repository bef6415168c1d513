// Package testutil provides small helpers shared by the subprocess test
// suites: skipping when a host binary is unavailable, temp-file fixtures,
// and a captured logger for asserting on log output.
package testutil
