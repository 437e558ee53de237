package resource

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go-clinic-dashboard/internal/domain/entity"
)

// Draft is the working copy of a record being created or edited, keyed by
// the json field names the upstream API uses.
type Draft map[string]interface{}

// String renders a scalar draft value. Missing and null values are "".
func (d Draft) String(key string) string {
	switch v := d[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case entity.ID:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// IDs reads a multi-select field.
func (d Draft) IDs(key string) []entity.ID {
	var out []entity.ID
	switch v := d[key].(type) {
	case []entity.ID:
		out = append(out, v...)
	case []string:
		for _, s := range v {
			out = append(out, entity.ID(s))
		}
	case []interface{}:
		for _, item := range v {
			s := Draft{"v": item}.String("v")
			if s != "" {
				out = append(out, entity.ID(s))
			}
		}
	case string, json.Number, float64, int:
		if s := d.String(key); s != "" {
			out = append(out, entity.ID(s))
		}
	}
	return out
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		switch vv := v.(type) {
		case []interface{}:
			out[k] = append([]interface{}(nil), vv...)
		case []string:
			out[k] = append([]string(nil), vv...)
		case []entity.ID:
			out[k] = append([]entity.ID(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}

func numberValue(s string) json.Number {
	return json.Number(s)
}

// SplitDateTime breaks "2025-01-05T14:30:00" into "2025-01-05" and "14:30".
// Values without a time component return an empty time.
func SplitDateTime(value string) (string, string) {
	value = strings.TrimSpace(value)
	if len(value) < 10 {
		return value, ""
	}
	date, rest := value[:10], value[10:]
	if len(rest) < 6 || (rest[0] != 'T' && rest[0] != ' ') {
		return date, ""
	}
	return date, rest[1:6]
}

// CombineDateTime joins a date and an HH:MM (or HH:MM:SS) time into the
// upstream timestamp form. Seconds default to 00.
func CombineDateTime(date, clock string) string {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return ""
	}
	switch len(clock) {
	case 0:
		return date
	case 5:
		return date + "T" + clock + ":00"
	default:
		return date + "T" + clock
	}
}
