// Package view holds the interactive state of a campaign listing.
//
// A Controller owns one dataset and one model.Query. Each action changes
// exactly one part of the query (the sort selection or the fully funded
// toggle), re-runs the engine and keeps the resulting listing. Controllers
// are not safe for concurrent use; the web page builds one per request and
// the terminal UI owns a single one.
package view
