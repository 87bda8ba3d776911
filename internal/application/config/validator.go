package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/replize-go/internal/domain"
)

// Validate ensures the resolved config can drive a session.
func Validate(cfg domain.Config) error {
	if strings.TrimSpace(cfg.Command) == "" {
		return errors.New("base command must not be empty")
	}
	if cfg.PromptTemplate == "" {
		return errors.New("prompt template must not be empty")
	}
	if len(cfg.ExitCommands) == 0 {
		return errors.New("at least one exit command must be configured")
	}
	for _, word := range cfg.ExitCommands {
		if strings.TrimSpace(word) == "" {
			return errors.New("exit commands must not contain blank words")
		}
		if strings.ContainsAny(word, " \t") {
			return fmt.Errorf("exit command %q must be a single word", word)
		}
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", cfg.Timeout)
	}
	if cfg.EnableHistory && cfg.EnhancedInput && strings.TrimSpace(cfg.HistoryFile) == "" {
		return errors.New("history file must be set when history is enabled")
	}
	return nil
}
