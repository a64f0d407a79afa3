// Package pipeline implements the sort/filter engine that turns a campaign
// dataset and a Query into a display Listing.
//
// The engine is a short sequence of steps: a FilterStep that drops fully
// funded campaigns unless the query asks for them, followed by a SortStep
// that orders what is left with a stable comparison. Each step receives the
// listing built so far and may reorder or drop entries, never modify them.
//
// Everything here is synchronous and free of package state: Apply is a
// pure function of its arguments, so identical inputs always yield an
// identical sequence.
package pipeline
