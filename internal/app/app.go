// Package app holds identifiers shared across the chrono packages.
package app

// Name is the application name used for the config directory
const Name = "chrono"
