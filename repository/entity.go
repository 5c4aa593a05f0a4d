package repository

import (
	"encoding/json"
	"fmt"
)

// Entity is an opaque JSON-like record identified by an "id" field. Its
// schema is owned by the remote service; the SDK never enforces one.
type Entity = map[string]any

// ToEntity converts a typed DTO into an Entity via its JSON representation.
func ToEntity(v any) (Entity, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("repository: cannot convert %T to entity: %w", v, err)
	}
	var e Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("repository: cannot convert %T to entity: %w", v, err)
	}
	return e, nil
}

// FromEntity decodes an Entity into a typed DTO.
func FromEntity(e Entity, dest any) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("repository: cannot decode entity: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("repository: cannot decode entity into %T: %w", dest, err)
	}
	return nil
}

// entityID extracts the id field from an entity, empty when absent.
func entityID(e Entity) string {
	if e == nil {
		return ""
	}
	if id, ok := e["id"].(string); ok {
		return id
	}
	if id, ok := e["id"]; ok {
		return fmt.Sprintf("%v", id)
	}
	return ""
}
