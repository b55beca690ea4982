// Package helper provides test doubles and fixtures shared by the test suites:
// spies for the observability interfaces, a fixed clock, and loan fixtures.
package helper
