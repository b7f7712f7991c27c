// Package config assembles the site configuration: built-in defaults per
// site language, an optional YAML overlay, normalization, validation, and
// rendering into the structure read by the host build tool.
package config
