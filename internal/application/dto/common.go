package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	Pages    int `json:"pages"`
	PageSize int `json:"page_size"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Amount monto tal como lo escribió el usuario. Acepta 1500, "1500.50" o "1 500,50"; la validación
// y el parseo los hace pkg/money.
type Amount string

// UnmarshalJSON acepta número, string o null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("monto inválido: %s", string(data))
		}
		*a = Amount(n.String())
	}
	return nil
}
