// Package config loads rotor's declarative configuration: the hosts, the
// users on each host and the properties every user should have.
//
// Configuration is layered with koanf. Embedded defaults come first, then
// the configuration file (TOML or YAML), then ROTOR_* environment
// variables. The decoded Config is turned into a host.Registry by Build.
package config
