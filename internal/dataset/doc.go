// Package dataset loads campaign datasets.
//
// A dataset is a JSON or YAML array of campaign objects, or a SQLite bundle
// written by `fundboard bundle`. Loading is strict: a record missing one of
// title, url, amount_raised or goal, or carrying a value of the wrong type,
// fails the whole load with an error that names the record index and wraps
// model.ErrMalformedCampaign.
//
// difference_from_goal is optional on input. By default it is recomputed as
// goal - amount_raised for every record, and a stored value that disagrees is
// reported as a warning. WithTrustStoredDifference keeps stored values.
//
// When no path is given the embedded demo dataset is used.
package dataset
