package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type statusErr int

func (e statusErr) Error() string       { return "status" }
func (e statusErr) HTTPStatusCode() int { return int(e) }

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.DeadlineExceeded, true},
		{statusErr(429), true},
		{statusErr(503), true},
		{statusErr(400), false},
		{errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("IsRetryableError(%v): want=%v got=%v", tc.err, tc.want, got)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "30")
	if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 10*time.Second {
		t.Fatalf("expected cap at 10s, got %s", got)
	}
	if got := RetryAfterDuration(nil, 2*time.Second, 0); got != 2*time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
}

func TestBackoff(t *testing.T) {
	if got := Backoff(100*time.Millisecond, time.Second, 1); got != 100*time.Millisecond {
		t.Fatalf("attempt 1: got %s", got)
	}
	if got := Backoff(100*time.Millisecond, time.Second, 3); got != 400*time.Millisecond {
		t.Fatalf("attempt 3: got %s", got)
	}
	if got := Backoff(100*time.Millisecond, time.Second, 10); got != time.Second {
		t.Fatalf("attempt 10: got %s", got)
	}
}

func TestJitterSleepWithinBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 50; i++ {
		d := JitterSleep(base)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("jitter out of bounds: %s", d)
		}
	}
}
