package cell

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// maxCount bounds ToCount so a corrupt value cannot request an
// unbounded number of nodes.
const maxCount = math.MaxInt32

// IsNil reports whether v is absent: a nil interface or a nil pointer,
// map, slice, func, chan or interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Stringify returns the display text of a cell value. Absent values
// render as "". Pointers are followed.
func Stringify(v any) string {
	if IsNil(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// ToCount interprets v as a repeat count. Negative, non-numeric, NaN and
// absent values count as zero; fractions truncate toward zero.
func ToCount(v any) int {
	n, ok := toInt(v)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// toInt converts numeric values and numeric strings to an int, clamped
// to ±maxCount.
func toInt(v any) (int, bool) {
	if IsNil(v) {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return clampInt64(int64(x)), true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return clampInt64(x), true
	case uint:
		return clampUint64(uint64(x)), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return clampUint64(uint64(x)), true
	case uint64:
		return clampUint64(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case json.Number:
		return stringToInt(x.String())
	case string:
		return stringToInt(x)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return toInt(rv.Elem().Interface())
	}
	return 0, false
}

func stringToInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !isDecimal(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

// isDecimal reports whether s is written in plain decimal notation, with
// an optional sign, fraction and exponent. ParseFloat alone would also
// accept "Inf", "NaN", hex floats and underscores.
func isDecimal(s string) bool {
	digits := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-':
		default:
			return false
		}
	}
	return digits
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f > maxCount {
		return maxCount, true
	}
	if f < -maxCount {
		return -maxCount, true
	}
	return int(f), true
}

func clampInt64(n int64) int {
	if n > maxCount {
		return maxCount
	}
	if n < -maxCount {
		return -maxCount
	}
	return int(n)
}

func clampUint64(n uint64) int {
	if n > maxCount {
		return maxCount
	}
	return int(n)
}
