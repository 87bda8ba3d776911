package assets

import (
	_ "embed"
)

// DefaultConfigTOML contains the embedded default configuration. It has the
// same shape as a user config file.
//
//go:embed defaults/config.toml
var DefaultConfigTOML []byte
