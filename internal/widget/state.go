package widget

import (
	"encoding/base64"
	"fmt"

	"github.com/lucax88x/clockface/internal/clockface"
	"gopkg.in/yaml.v2"
)

const superStateKey = "superState"

// encodeState writes the style colors next to the host's opaque blob.
func encodeState(style clockface.Style, superState []byte) ([]byte, error) {
	bundle := yaml.MapSlice{}

	if superState != nil {
		bundle = append(bundle, yaml.MapItem{
			Key:   superStateKey,
			Value: base64.StdEncoding.EncodeToString(superState),
		})
	}

	for _, key := range clockface.Keys {
		c, _ := style.Get(key)
		bundle = append(bundle, yaml.MapItem{Key: key, Value: c.String()})
	}

	out, err := yaml.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("widget: could not marshal state. %w", err)
	}

	return out, nil
}

// decodeState never fails: missing or malformed colors fall back to the
// default palette one by one. The error reports what was skipped.
func decodeState(data []byte) (clockface.Style, []byte, error) {
	style := clockface.DefaultStyle()

	var bundle map[string]string
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return style, nil, fmt.Errorf("widget: could not unmarshal state. %w", err)
	}

	var problems []string
	for _, key := range clockface.Keys {
		value, ok := bundle[key]
		if !ok {
			continue
		}

		c, err := clockface.ParseColor(value)
		if err != nil {
			problems = append(problems, key)
			continue
		}

		style, _ = style.With(key, c)
	}

	var superState []byte
	if encoded, ok := bundle[superStateKey]; ok {
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			problems = append(problems, superStateKey)
		} else {
			superState = decoded
		}
	}

	if len(problems) > 0 {
		return style, superState, fmt.Errorf("widget: ignored invalid state fields %v", problems)
	}

	return style, superState, nil
}
