// Package database reads and writes fundboard dataset bundles.
//
// A bundle is a single SQLite file (via modernc.org/sqlite, no cgo) holding
// the campaigns of one dataset in their authored order, plus a small
// metadata table recording where the data came from. `fundboard bundle`
// writes bundles; every viewing command opens them read-only, so a view
// session never changes the data it displays.
package database
