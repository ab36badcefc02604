// Package currency formatea y convierte montos en las monedas que maneja el panel
// (UZS como moneda base, USD, EUR y RUB como monedas de visualización).
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Code código ISO 4217 soportado.
type Code string

const (
	UZS Code = "UZS"
	USD Code = "USD"
	EUR Code = "EUR"
	RUB Code = "RUB"
)

// Supported monedas seleccionables en el panel, en orden de presentación.
var Supported = []Code{UZS, USD, EUR, RUB}

// Rates cuántos UZS vale una unidad de cada moneda.
type Rates map[Code]decimal.Decimal

// DefaultRates tasas por defecto (sin proveedor externo de cambio).
func DefaultRates() Rates {
	return Rates{
		UZS: decimal.NewFromInt(1),
		USD: decimal.NewFromInt(12700),
		EUR: decimal.NewFromInt(13500),
		RUB: decimal.NewFromInt(140),
	}
}

// Parse valida un código ISO y que sea una de las monedas soportadas.
func Parse(code string) (Code, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return "", fmt.Errorf("currency: código inválido %q: %w", code, err)
	}
	c := Code(unit.String())
	for _, s := range Supported {
		if s == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("currency: moneda no soportada %q", c)
}

// Formatter convierte montos a texto según idioma y moneda.
type Formatter struct {
	lang  language.Tag
	rates Rates
}

// NewFormatter construye el formateador. rates nil usa DefaultRates.
func NewFormatter(lang language.Tag, rates Rates) *Formatter {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Formatter{lang: lang, rates: rates}
}

// Format devuelve el monto con 0 a 2 decimales y agrupación del idioma.
// showSymbol añade el símbolo de la moneda; UZS se muestra con sufijo "so'm".
func (f *Formatter) Format(amount float64, code string, showSymbol bool) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	rounded := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	p := message.NewPrinter(f.lang)
	num := p.Sprint(number.Decimal(rounded.InexactFloat64(), number.MaxFractionDigits(2)))
	if !showSymbol {
		return sign + num
	}
	// el signo va delante del símbolo: -$5
	switch Code(strings.ToUpper(code)) {
	case UZS:
		return sign + num + " so'm"
	case USD:
		return sign + "$" + num
	case EUR:
		return sign + "€" + num
	case RUB:
		return sign + num + " ₽"
	default:
		return sign + num + " " + code
	}
}

// ConvertToUZS convierte un monto expresado en from a UZS.
func (f *Formatter) ConvertToUZS(amount decimal.Decimal, from Code) (decimal.Decimal, error) {
	rate, ok := f.rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("currency: sin tasa para %s", from)
	}
	return amount.Mul(rate), nil
}

// ConvertFromUZS convierte un monto en UZS a la moneda to.
func (f *Formatter) ConvertFromUZS(amount decimal.Decimal, to Code) (decimal.Decimal, error) {
	rate, ok := f.rates[to]
	if !ok || rate.IsZero() {
		return decimal.Zero, fmt.Errorf("currency: sin tasa para %s", to)
	}
	return amount.DivRound(rate, 2), nil
}

// FormatFromUZS convierte un monto almacenado en UZS a la moneda de visualización y lo formatea.
func (f *Formatter) FormatFromUZS(amountUZS float64, to Code, showSymbol bool) string {
	if math.IsNaN(amountUZS) || math.IsInf(amountUZS, 0) {
		return f.Format(amountUZS, string(to), showSymbol)
	}
	converted, err := f.ConvertFromUZS(decimal.NewFromFloat(amountUZS), to)
	if err != nil {
		return f.Format(amountUZS, string(UZS), showSymbol)
	}
	return f.Format(converted.InexactFloat64(), string(to), showSymbol)
}
