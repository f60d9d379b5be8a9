package i18n

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAML decodes a single-language catalog into a nested map.
func parseYAML(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(data) == 0 {
		return nil, ErrNoTranslations
	}

	for key, val := range data {
		switch val.(type) {
		case string, map[string]any:
		default:
			return nil, fmt.Errorf("%w: key %q has type %T", ErrInvalidStructure, key, val)
		}
	}

	return data, nil
}
