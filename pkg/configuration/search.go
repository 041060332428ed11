package configuration

// Document is a parsed two-level YAML configuration mapping: primary key to
// a mapping of secondary keys. It is loaded once at startup and never
// mutated afterwards.
type Document map[string]any

// Search resolves doc[key][subKey]. A present value is returned without
// transformation. When the pair is absent the outcome depends on required:
// a coded error, or nil so the caller can substitute its own default.
//
// A primary key that is present but blank is always an error, whatever
// required says: a blank section is a broken file, not a missing option.
func Search(key, subKey string, doc Document, required bool) (any, error) {
	if doc == nil {
		return nil, NewError(1021, "invalid configuration file: YAML mapping not found")
	}

	sectionValue, ok := doc[key]
	if ok && sectionValue == nil {
		return nil, NewError(1004, "%s: section in configuration is blank, please fix", key)
	}

	if section, isMapping := sectionValue.(map[string]any); isMapping {
		if value, present := section[subKey]; present && value != nil {
			return value, nil
		}
	}

	if required {
		return nil, NewError(1016, "%s:%s not defined in configuration", key, subKey)
	}
	return nil, nil
}
