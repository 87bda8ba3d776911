// Package config resolves the layered replize configuration into the Config a
// session runs with.
package config

import (
	"github.com/doeshing/replize-go/internal/domain"
)

// Resolve builds the session Config for command. Layers are applied in order,
// later layers winning: built-in defaults, the file's [defaults] block, the
// matching [commands.<name>] block, then explicitly set CLI flags.
func Resolve(command string, defaults domain.Settings, file domain.FileConfig, cli domain.Settings) domain.Config {
	cfg := domain.NewConfig(command).Apply(defaults)
	for _, layer := range file.SettingsFor(command) {
		cfg = cfg.Apply(layer)
	}
	return cfg.Apply(cli)
}
