// Package config defines processing and provisioning settings shared by the
// voicetrim binaries and provides helpers to load, validate and save them in
// YAML format.
//
// The configuration file is optional: when it does not exist, built-in
// defaults matching the stock recording workflow are used.
package config
