// Package config loads, merges, and validates the application configuration.
//
// Values are collected from three sources — environment variables,
// command-line flags, and an optional JSON file — merged with earlier
// sources taking precedence, topped up with built-in defaults, and
// validated once at process start. The resulting [StructuredConfig] is
// passed explicitly to every component that needs it; there is no global
// configuration lookup.
//
// The main entry point is [GetStructuredConfig].
package config
