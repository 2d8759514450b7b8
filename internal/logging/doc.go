// Package logging builds the application's zap logger and the two places
// log entries are kept in memory: a bounded ring of recent entries, and
// per-request stores that are saved into a stash cache keyed by RequestID.
package logging
