// Package synthcache persists per-chunk synthesis results in a SQLite
// database so re-running a script only pays for chunks whose text or
// synthesizer configuration changed. A file lock guards the database
// against concurrent subforge processes.
package synthcache
