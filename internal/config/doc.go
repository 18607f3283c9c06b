// Package config assembles the server configuration.
//
// Sources are merged field by field, and the first non-zero value wins:
//  1. environment (a .env file seeds variables that are not already set)
//  2. command-line flags
//  3. the JSON file named by CONFIG, -c or -config
//
// Defaults fill what is still empty, then [StructuredConfig] is validated as
// a whole. Use [GetStructuredConfig].
package config
