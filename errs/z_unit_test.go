package errs_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/zintix-labs/floatrand/errs"
)

func TestWrapKeepsLevel(t *testing.T) {
	inner := errs.NewWarn("bad interval")
	w := errs.Wrap(inner, "parse request")
	if w.ErrLv != errs.Warn {
		t.Fatalf("wrap of *E should keep level, got %s", w.ErrLv)
	}
	if !errors.Is(w, inner) {
		t.Fatalf("errors.Is should find inner")
	}

	foreign := errors.New("disk gone")
	if got := errs.Wrap(foreign, "load config").ErrLv; got != errs.Fatal {
		t.Fatalf("foreign error should wrap as fatal, got %s", got)
	}
}

func TestWarnWrap(t *testing.T) {
	_, perr := strconv.ParseFloat("abc", 64)
	e := errs.WarnWrap(perr, "not a number", "abc")
	if errs.Level(e) != errs.Warn {
		t.Fatalf("level got %s want warn", errs.Level(e))
	}
	var ne *strconv.NumError
	if !errors.As(e, &ne) {
		t.Fatalf("cause should be reachable")
	}
	msg := e.Error()
	if !strings.Contains(msg, "errlv=warn") || !strings.Contains(msg, "extra: abc") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestLevel(t *testing.T) {
	if errs.Level(nil) != errs.None {
		t.Fatalf("nil should be None")
	}
	if errs.Level(errors.New("x")) != errs.None {
		t.Fatalf("foreign should be None")
	}
	if errs.Level(errs.Fatalf("boom %d", 1)) != errs.Fatal {
		t.Fatalf("fatal expected")
	}
	if _, ok := errs.AsErr(errors.New("x")); ok {
		t.Fatalf("AsErr on foreign error should be false")
	}
}
