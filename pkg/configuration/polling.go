package configuration

import "github.com/spf13/cast"

// PollingPoint pairs a polling target address with the multiplier applied
// to the values collected from it.
type PollingPoint struct {
	Address    string
	Multiplier int
}

// PollingPoints extracts PollingPoint records from loosely typed
// configuration data. Extraction is best effort, not a validation gate:
// entries that are not mappings or carry no address are skipped, input
// order is preserved, and a missing multiplier defaults to 1.
func PollingPoints(data any) []PollingPoint {
	results := []PollingPoint{}

	list, ok := data.([]any)
	if !ok {
		return results
	}

	for _, item := range list {
		record, isMapping := item.(map[string]any)
		if !isMapping {
			continue
		}

		address, present := record["address"]
		if !present || address == nil {
			continue
		}

		multiplier := 1
		if raw, has := record["multiplier"]; has {
			if parsed, err := cast.ToIntE(raw); err == nil {
				multiplier = parsed
			}
		}

		results = append(results, PollingPoint{
			Address:    cast.ToString(address),
			Multiplier: multiplier,
		})
	}

	return results
}
