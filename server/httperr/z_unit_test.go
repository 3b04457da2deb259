package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/floatrand/errs"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.NewWarn("bad interval"), http.StatusBadRequest},
		{errs.Wrap(errs.NewWarn("bad"), "outer"), http.StatusBadRequest},
		{errs.NewFatal("boom"), http.StatusInternalServerError},
		{errors.New("foreign"), http.StatusInternalServerError},
		{errs.Wrap(context.DeadlineExceeded, "sim"), http.StatusGatewayTimeout},
		{errs.Wrap(context.Canceled, "sim"), http.StatusRequestTimeout},
	}
	for i, c := range cases {
		if got := StatusCode(c.err); got != c.want {
			t.Fatalf("case %d: got %d want %d", i, got, c.want)
		}
	}
}

func TestErrsBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Errs(rec, errs.NewWithExtra(errs.Warn, "interval bound is not a number", "[a,1]"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status got %d", rec.Code)
	}
	var b Body
	if err := json.NewDecoder(rec.Body).Decode(&b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Error != "interval bound is not a number: [a,1]" || b.Level != "warn" {
		t.Fatalf("unexpected body %+v", b)
	}

	rec = httptest.NewRecorder()
	Errs(rec, nil)
	if rec.Body.Len() != 0 {
		t.Fatalf("nil error should write nothing")
	}
}
