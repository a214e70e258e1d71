package observability

import (
	"reflect"
	"testing"
)

func TestOtelHeaders(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", " api-key = abc ,broken, =x,tenant=skillgraph")
	got := otelHeaders()
	want := map[string]string{"api-key": "abc", "tenant": "skillgraph"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("headers: got %v want %v", got, want)
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	if got := otelHeaders(); got != nil {
		t.Fatalf("expected nil headers, got %v", got)
	}
}

func TestOtelSampleRatio(t *testing.T) {
	cases := map[string]float64{
		"":     0.1,
		"0.25": 0.25,
		"-1":   0,
		"3":    1,
		"abc":  0.1,
	}
	for raw, want := range cases {
		t.Setenv("OTEL_SAMPLER_RATIO", raw)
		if got := otelSampleRatio(); got != want {
			t.Fatalf("ratio(%q) = %v, want %v", raw, got, want)
		}
	}
}
