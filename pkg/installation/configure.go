// Package installation provides the install-time helpers that scaffold the
// pattoo configuration file, validate its required keys and provision the
// platform's system account and directories.
package installation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/bonnie-23/pattoo-shared/pkg/configuration"
	"github.com/bonnie-23/pattoo-shared/pkg/files"
)

// Options controls Configure behavior.
type Options struct {
	// Server selects the server configuration file instead of the agent one.
	// Server mode skips directory provisioning.
	Server bool

	// Owner, when set, names the system account that receives ownership of
	// any directories created during configuration.
	Owner string
}

// ReadConfig loads the configuration file at path and merges it over
// defaults, key by key, with file values winning. When the file does not
// exist the defaults are returned unchanged.
func ReadConfig(path string, defaults configuration.Document) (configuration.Document, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return defaults, nil
	}

	overrides, err := files.ReadYAMLFile(path)
	if err != nil {
		return nil, configuration.NewError(1011, "unable to read configuration file %s: %v", path, err)
	}

	return configuration.Document(mergeMappings(defaults, overrides)), nil
}

// mergeMappings overlays override onto base. Recursion only happens when
// both sides hold a mapping for the same key; otherwise the override value
// wins wholesale, including on type conflicts.
func mergeMappings(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range override {
		baseMap, baseIsMap := merged[key].(map[string]any)
		overrideMap, overrideIsMap := value.(map[string]any)
		if baseIsMap && overrideIsMap {
			merged[key] = mergeMappings(baseMap, overrideMap)
			continue
		}
		merged[key] = value
	}
	return merged
}

// Configure merges defaults with any existing configuration file in
// configDir and writes the result back, returning the file path. In agent
// mode every pattoo "*directory" value must contain a path separator;
// missing directories are created and handed to Options.Owner.
func Configure(configDir string, defaults configuration.Document, opts Options) (string, error) {
	filename := configuration.ConfigFilename
	if opts.Server {
		filename = configuration.ServerConfigFilename
	}
	configFile := filepath.Join(configDir, filename)

	merged, err := ReadConfig(configFile, defaults)
	if err != nil {
		return "", err
	}

	if !opts.Server {
		if err := provisionDirectories(merged, opts.Owner); err != nil {
			return "", err
		}
	}

	data, err := yaml.Marshal(map[string]any(merged))
	if err != nil {
		return "", fmt.Errorf("marshal configuration: %w", err)
	}
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", configFile, err)
	}
	return configFile, nil
}

// provisionDirectories creates every directory the pattoo section points
// at. Values without a path separator are rejected before anything touches
// the disk.
func provisionDirectories(doc configuration.Document, owner string) error {
	section, _ := doc["pattoo"].(map[string]any)

	keys := make([]string, 0, len(section))
	for key := range section {
		if strings.Contains(key, "directory") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := cast.ToString(section[key])
		if !strings.Contains(value, string(os.PathSeparator)) {
			return configuration.NewError(1019, "%q is an invalid directory", value)
		}

		directory := files.ExpandUser(value)
		if info, err := os.Stat(directory); err == nil && info.IsDir() {
			continue
		}
		if err := files.MkDir(directory); err != nil {
			return fmt.Errorf("create %s: %w", directory, err)
		}
		if owner != "" {
			if err := Chown(directory, owner); err != nil {
				return err
			}
		}
	}
	return nil
}
