package installation

import (
	"sort"

	"github.com/bonnie-23/pattoo-shared/pkg/configuration"
	"github.com/bonnie-23/pattoo-shared/pkg/files"
)

// RequiredKeys maps each mandatory primary key to the secondary keys that
// must appear under it. Each component supplies its own schema.
type RequiredKeys map[string][]string

// CheckDocument verifies that every required primary and secondary key is
// present in doc. Pure validation: the document is not touched. Primary
// keys are checked in sorted order so diagnostics are stable.
func CheckDocument(doc configuration.Document, required RequiredKeys) error {
	if doc == nil {
		return configuration.NewError(1021, "invalid configuration file: YAML mapping not found")
	}

	primaries := make([]string, 0, len(required))
	for primary := range required {
		primaries = append(primaries, primary)
	}
	sort.Strings(primaries)

	for _, primary := range primaries {
		value, present := doc[primary]
		if !present {
			return configuration.NewError(1055, "section %q not found in configuration, please fix", primary)
		}
		if value == nil {
			return configuration.NewError(1004, "%s: section in configuration is blank, please fix", primary)
		}

		section, _ := value.(map[string]any)
		for _, secondary := range required[primary] {
			if _, ok := section[secondary]; !ok {
				return configuration.NewError(1062, "section %q does not have a %q sub-section, please fix", primary, secondary)
			}
		}
	}
	return nil
}

// CheckConfig loads the configuration file at path and validates it
// against required. Designed to run once before any accessor is trusted.
func CheckConfig(path string, required RequiredKeys) error {
	doc, err := files.ReadYAMLFile(path)
	if err != nil {
		return configuration.NewError(1011, "unable to read configuration file %s: %v", path, err)
	}
	return CheckDocument(configuration.Document(doc), required)
}
