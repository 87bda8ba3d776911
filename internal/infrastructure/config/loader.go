package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/replize-go/assets"
	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/pkg/filesystem"
	"github.com/doeshing/replize-go/internal/ports"
)

// EnvConfigPath overrides the config file location when --config is not given.
const EnvConfigPath = "REPLIZE_CONFIG"

// DefaultPaths lists the config files probed when no path is given, in order.
// The first one that exists wins.
var DefaultPaths = []string{
	"~/.replizerc",
	"~/.replize.toml",
	"~/.config/replize/config.toml",
	"~/.replize.yaml",
	"~/.config/replize/config.yaml",
}

// FileLoader reads a TOML or YAML replize config file.
type FileLoader struct {
	overridePath string
	logger       ports.Logger
}

// NewFileLoader builds a new loader. An empty path falls back to
// REPLIZE_CONFIG and then to DefaultPaths.
func NewFileLoader(path string, logger ports.Logger) *FileLoader {
	return &FileLoader{overridePath: path, logger: logger}
}

// Load implements ports.ConfigProvider. A missing default file yields an
// empty FileConfig; a missing explicit file is an error.
func (l *FileLoader) Load(context.Context) (domain.FileConfig, error) {
	path, explicit := l.resolvePath()
	if path == "" {
		l.logger.Debug("no config file found", nil)
		return domain.FileConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return domain.FileConfig{}, nil
		}
		return domain.FileConfig{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg, ok, err := decode(path, data)
	if err != nil {
		return domain.FileConfig{}, err
	}
	if !ok {
		l.logger.Warn("unsupported config file format, ignoring", map[string]interface{}{"path": path})
		return domain.FileConfig{}, nil
	}

	l.logger.Debug("config file loaded", map[string]interface{}{
		"path":     path,
		"commands": len(cfg.Commands),
	})
	return cfg, nil
}

func (l *FileLoader) resolvePath() (string, bool) {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath), true
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom), true
	}
	for _, candidate := range DefaultPaths {
		path := filesystem.ExpandPath(candidate)
		if _, err := os.Stat(path); err == nil {
			return path, false
		}
	}
	return "", false
}

// decode picks the format from the file name. The bool result is false for
// formats replize does not understand.
func decode(path string, data []byte) (domain.FileConfig, bool, error) {
	var cfg domain.FileConfig

	switch format(path) {
	case "toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return domain.FileConfig{}, true, fmt.Errorf("decode config file %q: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.FileConfig{}, true, fmt.Errorf("decode config file %q: %w", path, err)
		}
	default:
		return domain.FileConfig{}, false, nil
	}
	return cfg, true, nil
}

func format(path string) string {
	if filepath.Base(path) == ".replizerc" {
		return "toml"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// Defaults returns the built-in settings layer.
func Defaults() (domain.Settings, error) {
	var cfg domain.FileConfig
	if _, err := toml.Decode(string(assets.DefaultConfigTOML), &cfg); err != nil {
		return domain.Settings{}, fmt.Errorf("decode embedded defaults: %w", err)
	}
	return cfg.Defaults, nil
}
