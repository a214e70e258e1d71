package graph

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Property decoding for values written by other services. Numbers may arrive
// as int64, float64 or strings; temporal values as driver types or RFC3339 text.

func get(rec *neo4j.Record, key string) any {
	if rec == nil {
		return nil
	}
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	return v
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asIntPtr(v any) *int {
	switch t := v.(type) {
	case int64:
		n := int(t)
		return &n
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		n := int(t)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

func asFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return &t
	case int64:
		f := float64(t)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func asStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, it := range list {
		if s := asString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInts(v any) []int {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(list))
	for _, it := range list {
		if n := asIntPtr(it); n != nil {
			out = append(out, *n)
		}
	}
	return out
}

func asVector(v any) []float32 {
	switch t := v.(type) {
	case []any:
		out := make([]float32, 0, len(t))
		for _, it := range t {
			switch f := it.(type) {
			case float64:
				out = append(out, float32(f))
			case int64:
				out = append(out, float32(f))
			default:
				return nil
			}
		}
		return out
	case []float64:
		out := make([]float32, len(t))
		for i := range t {
			out[i] = float32(t[i])
		}
		return out
	default:
		return nil
	}
}

type timeLike interface{ Time() time.Time }

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case timeLike:
		return t.Time()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC()
			}
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

func asTimePtr(v any) *time.Time {
	t := asTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

func asProps(v any) map[string]any {
	switch t := v.(type) {
	case neo4j.Node:
		return t.Props
	case map[string]any:
		return t
	default:
		return map[string]any{}
	}
}

func vectorParam(v []float32) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		out[i] = float64(v[i])
	}
	return out
}

func timeParam(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
