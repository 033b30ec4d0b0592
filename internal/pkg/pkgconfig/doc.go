// Package pkgconfig reads service configuration.
//
// Business code depends on the Config interface. The Viper implementation
// layers three sources: defaults supplied by the caller, a YAML file, and
// GOSHEET_* environment variables.
package pkgconfig
