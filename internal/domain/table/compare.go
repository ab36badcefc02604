package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
)

// compareValues orden ascendente entre dos valores de celda:
//   - nil antes que cualquier otro valor
//   - números por valor, textos por colación del idioma, fechas por instante, false < true
//   - -Inf antes de los finitos; +Inf y luego NaN después
//   - tipos distintos por su forma textual, también con colación
func compareValues(a, b any, coll *collate.Collator) int {
	aNil, bNil := isNil(a), isNil(b)
	switch {
	case aNil && bNil:
		return 0
	case aNil:
		return -1
	case bNil:
		return 1
	}

	if ra, x, ok := numberKey(a); ok {
		if rb, y, ok := numberKey(b); ok {
			if ra != rb || ra != rankFinite {
				return cmp.Compare(ra, rb)
			}
			return x.Cmp(y)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return coll.CompareString(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	}

	return coll.CompareString(Stringify(a), Stringify(b))
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *string:
		return x == nil
	case *time.Time:
		return x == nil
	}
	return false
}

const (
	rankNegInf = iota
	rankFinite
	rankPosInf
	rankNaN
)

// numberKey separa los flotantes no finitos, que decimal no representa.
func numberKey(v any) (int, decimal.Decimal, bool) {
	var f float64
	switch x := v.(type) {
	case float32:
		f = float64(x)
	case float64:
		f = x
	default:
		d, ok := asNumber(v)
		return rankFinite, d, ok
	}
	switch {
	case math.IsNaN(f):
		return rankNaN, decimal.Decimal{}, true
	case math.IsInf(f, -1):
		return rankNegInf, decimal.Decimal{}, true
	case math.IsInf(f, 1):
		return rankPosInf, decimal.Decimal{}, true
	}
	d, _ := asNumber(v)
	return rankFinite, d, true
}

// asNumber reconoce los tipos numéricos nativos, json.Number y decimal.Decimal.
// Los textos numéricos NO cuentan: "10" se ordena como texto.
func asNumber(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int8:
		return decimal.NewFromInt(int64(x)), true
	case int16:
		return decimal.NewFromInt(int64(x)), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case uint:
		return decimal.RequireFromString(strconv.FormatUint(uint64(x), 10)), true
	case uint8:
		return decimal.NewFromInt(int64(x)), true
	case uint16:
		return decimal.NewFromInt(int64(x)), true
	case uint32:
		return decimal.NewFromInt(int64(x)), true
	case uint64:
		return decimal.RequireFromString(strconv.FormatUint(x, 10)), true
	case float32:
		return decimal.NewFromFloat32(x), true
	case float64:
		return decimal.NewFromFloat(x), true
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	case decimal.Decimal:
		return x, true
	}
	return decimal.Decimal{}, false
}

// Stringify forma textual de un valor de celda, usada por la búsqueda y el orden mixto.
// nil produce "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case time.Time:
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case decimal.Decimal:
		return x.String()
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		// valores anidados: solo el contenido, sin la sintaxis de Go
		if raw, err := json.Marshal(v); err == nil {
			return string(raw)
		}
	}
	return fmt.Sprint(v)
}
