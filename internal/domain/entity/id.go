package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identificador del marketplace. El backend lo envía como número o como string según el endpoint;
// internamente siempre se maneja como string. Vacío significa "sin valor" (p. ej. categoría raíz).
type ID string

// IsZero indica si el ID está vacío.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON acepta 7, "7" y null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: valor no soportado %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON devuelve un número cuando el ID es un entero canónico, para no cambiar el tipo que envía el backend.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}
