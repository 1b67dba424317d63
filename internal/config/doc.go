// Package config provides configuration structures and utilities for
// mailsleuth: the options of one investigation, their defaults and
// validation, and the optional .mailsleuth YAML file with per-platform
// settings.
package config
