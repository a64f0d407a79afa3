// Package main provides the entry point for the fundboard CLI.
//
// fundboard lists charity fundraising campaigns, sorted by amount raised or
// by distance from goal, with fully funded campaigns optionally hidden.
//
// Usage:
//
//	fundboard list --sort difference --order desc
//	fundboard serve --data campaigns.yaml
//	fundboard browse
//
// See --help for all available options.
package main

// main is the entry point for fundboard.
func main() {
	Execute()
}
