// Package tui is the terminal rendition of the campaign listing page.
//
// Model wraps a view.Controller and maps keys to its actions:
//
//	r / R   sort by amount raised, ascending / descending
//	d / D   sort by difference from goal, ascending / descending
//	f       show or hide fully funded campaigns
//	j / k   move the selection (also the arrow keys)
//	q       quit (also ctrl+c and esc)
package tui
