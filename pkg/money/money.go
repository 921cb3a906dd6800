// Package money valida y formatea importes en rublos sobre shopspring/decimal.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxAmount importe máximo aceptado en formularios del vendedor.
var MaxAmount = decimal.RequireFromString("99999999.99")

var (
	ErrEmpty         = errors.New("importe vacío")
	ErrInvalidFormat = errors.New("formato de importe inválido")
	ErrNegative      = errors.New("el importe no puede ser negativo")
	ErrTooPrecise    = errors.New("máximo dos decimales")
	ErrTooLarge      = errors.New("importe demasiado grande")
)

// Parse convierte el texto del formulario en un importe. Acepta coma o punto decimal y
// espacios como separador de miles ("1 250,50").
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".").Replace(s)
	if strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidFormat
	}
	return d, Validate(d)
}

// Validate aplica las reglas de importe: no negativo, a lo sumo dos decimales, tope MaxAmount.
func Validate(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrNegative
	}
	if !d.Equal(d.Truncate(2)) {
		return ErrTooPrecise
	}
	if d.GreaterThan(MaxAmount) {
		return ErrTooLarge
	}
	return nil
}

var printer = message.NewPrinter(language.Russian)

// Format importe con separador de miles ruso y símbolo de rublo; los kopeks solo si no es entero.
func Format(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("%d ₽", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f ₽", f)
}
