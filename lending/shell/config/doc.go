// Package config loads the process configuration of the loan server and builds the database pools
// and OpenTelemetry providers from it.
//
// Settings come from three layers, later ones winning:
// a YAML file, an optional .env file, and LOANS_* environment variables.
package config
