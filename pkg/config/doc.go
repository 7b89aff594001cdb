// Package config loads typed configuration structs from environment
// variables, with .env support for local development.
//
// Each package owning a config struct defines env-tagged fields and loads
// them through Load or MustLoad; parsed values are cached per type for the
// process lifetime.
package config
