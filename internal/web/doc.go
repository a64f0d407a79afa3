// Package web serves the campaign listing as a single HTML page.
//
// The view state (sort key, direction and the fully funded toggle) travels
// in the query string, so every control is a plain link and nothing is kept
// server side. Listings for all states are computed once when the handler
// is built; the dataset never changes while the server runs.
//
// Routes:
//
//	GET /                 the listing page
//	GET /campaigns.json   the same listing as JSON
//
// Query parameters sort, order and funded select the state. Invalid values
// are answered with 400 and the reason.
package web
