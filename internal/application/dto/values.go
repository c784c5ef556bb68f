package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/partdb-api/internal/domain"
)

// FlexInt entero tolerante: acepta número JSON o string ("5", " 12 ", "3.9"), como envían
// los formularios del navegador. Los decimales se truncan; texto no numérico vale 0.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = 0
		return nil
	case bytes.Equal(b, []byte("true")):
		*n = 1
		return nil
	case bytes.Equal(b, []byte("false")):
		*n = 0
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexInt(parseLeadingInt(s))
		return nil
	}
	if v, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*n = FlexInt(v)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return domain.NewInvalidInput("Invalid number %s", string(b))
	}
	*n = FlexInt(clampTrunc(f))
	return nil
}

func (n FlexInt) Int64() int64 { return int64(n) }

// parseLeadingInt toma el prefijo numérico de s ("12abc" → 12, "abc" → 0, "-3.7" → -3).
func parseLeadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) || ((c == 'e' || c == 'E') && end > 0) {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return clampTrunc(f)
		}
		end--
	}
	return 0
}

func clampTrunc(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// OptionalID referencia opcional a otra entidad.
//   - campo ausente: Set=false (no se toca la asociación);
//   - null, "" o 0: Set=true, Valid=false (se limpia);
//   - número o string numérico positivo: Set=true, Valid=true.
type OptionalID struct {
	Set   bool
	Valid bool
	Value int64
}

// ID construye un OptionalID presente.
func ID(v int64) OptionalID { return OptionalID{Set: true, Valid: v > 0, Value: v} }

// Null construye un OptionalID que limpia la asociación.
func Null() OptionalID { return OptionalID{Set: true} }

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Valid = false
	o.Value = 0
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	} else {
		raw = string(b)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return domain.NewInvalidInput("Invalid record id %s", raw)
	}
	if v > 0 {
		o.Valid = true
		o.Value = v
	}
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.Value, 10)), nil
}

// Ptr devuelve el id o nil si no hay referencia.
func (o OptionalID) Ptr() *int64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
