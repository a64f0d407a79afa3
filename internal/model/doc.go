// Package model defines the core data structures used throughout fundboard.
//
// This package contains the following main types:
//   - Campaign: A single fundraising record with a raised amount and a goal
//   - SortKey and Direction: The ordering applied to a listing
//   - Query: The full set of view parameters (key, direction, funded flag)
//   - Listing: The ordered, filtered result shown to a viewer
//
// Multiple packages (pipeline, dataset, report, web, tui) share these types,
// so they live here to keep the import graph acyclic.
//
// The models serialize to JSON with the field names of the dataset wire
// format, so a listing can be written back out in the same shape it was read.
package model
