// Package filters holds the applied catalog filter criteria.
package filters

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// Patch is a partial update of the applied criteria. Nil fields are left
// unchanged; equipment merges key by key.
type Patch struct {
	Location     *string
	VehicleType  *string
	Transmission *string
	Equipment    map[string]bool
}

// String returns a pointer to s, for building patches.
func String(s string) *string {
	return &s
}

// ParsePatch decodes a JSON patch. JSON that is not an object (including
// null) yields a nil patch, which applies as a no-op. A null string field
// clears that field.
func ParsePatch(data []byte) (*Patch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("parse filter patch: %w", err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parse filter patch: %w", err)
	}

	p := &Patch{}
	var err error
	if p.Location, err = stringField(raw, "location"); err != nil {
		return nil, err
	}
	if p.VehicleType, err = stringField(raw, "vehicleType"); err != nil {
		return nil, err
	}
	if p.Transmission, err = stringField(raw, "transmission"); err != nil {
		return nil, err
	}
	if eq, ok := raw["equipment"]; ok {
		var flags map[string]any
		if err := json.Unmarshal(eq, &flags); err != nil {
			return nil, fmt.Errorf("parse filter patch: equipment must be an object: %w", err)
		}
		p.Equipment = make(map[string]bool, len(flags))
		for name, v := range flags {
			flag, known := domain.LookupEquipment(name)
			b, isBool := v.(bool)
			if !known || !isBool {
				continue
			}
			p.Equipment[flag] = b
		}
	}
	return p, nil
}

func stringField(raw map[string]json.RawMessage, key string) (*string, error) {
	v, ok := raw[key]
	if !ok {
		return nil, nil
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return String(""), nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, fmt.Errorf("parse filter patch: %s must be a string", key)
	}
	return &s, nil
}
