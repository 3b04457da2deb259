//go:build !floatrand_nomath

package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestNormalExact(t *testing.T) {
	h := newTestHandler(t)
	b := decodeSample(t, do(t, h, http.MethodGet, "/v1/normal?method=exact&bits=32&n=100&seed=1", ""))
	if b.Method != "exact" || b.Bits != 32 || len(b.Values) != 100 {
		t.Fatalf("unexpected response: %+v", b)
	}
	if rec := do(t, h, http.MethodGet, "/", ""); !strings.Contains(rec.Body.String(), "exact") {
		t.Fatalf("index should list exact method")
	}
}
