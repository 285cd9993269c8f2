// Package record implements the "record" CLI command: a script-driven way to
// produce trace files with the real session engine, for testing the format
// and the inspect tooling end to end.
package record
