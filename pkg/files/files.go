// Package files provides the file-system helpers shared by the pattoo
// configuration and installation layers.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ReadYAMLFile parses the YAML file at path into a two-level mapping.
// Top-level keys with a null value are kept in the mapping: a blank
// section must stay visible so lookups can reject it.
func ReadYAMLFile(path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read yaml file %s: %w", path, err)
	}
	settings := v.AllSettings()

	// viper normalizes null-valued top-level keys out of AllSettings, so
	// restore them from the raw document.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml file %s: %w", path, err)
	}
	for key, value := range raw {
		if value == nil {
			settings[strings.ToLower(key)] = nil
		}
	}
	return settings, nil
}

// MkDir creates path and any missing parents. Creation is idempotent: an
// existing directory is fine, an existing non-directory is not.
func MkDir(path string) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists and is not a directory", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// ExpandUser expands a leading ~ to the current user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// agentIDFile is the name of the identity file kept in the daemon directory.
const agentIDFile = ".agent_id"

// AgentID returns the persistent identity of the agent running on this host,
// creating it under daemonDirectory on first use.
func AgentID(daemonDirectory string) (string, error) {
	path := filepath.Join(daemonDirectory, agentIDFile)
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}
	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write agent id file %s: %w", path, err)
	}
	return id, nil
}
