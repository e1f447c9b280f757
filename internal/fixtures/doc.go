// Package fixtures builds test and demonstration histories: six
// canonical scenarios for regression tests, and randomized synthetic
// histories — each tagged with a uuid so a failing run can be
// reproduced and referenced — for the CLI's fuzz subcommand and for
// broader property-style testing.
//
// Kept out of the core isocheck library, but carried here as the
// ambient test tooling a real repo around this checker would ship.
package fixtures
