package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func TestAsyncHandlerDrainsOnClose(t *testing.T) {
	out := new(lockedBuffer)
	ah := NewAsyncHandler(buildHandler(ModeProd, out), 64)
	log := slog.New(ah)
	for i := 0; i < 10; i++ {
		log.Info("sample", slog.Int("i", i))
	}
	ah.Close()

	if got := strings.Count(out.String(), `"msg":"sample"`); got+int(ah.Dropped()) != 10 {
		t.Fatalf("written %d + dropped %d should be 10", got, ah.Dropped())
	}

	log.Info("after close")
	if strings.Contains(out.String(), "after close") {
		t.Fatalf("records after Close must be dropped")
	}
	if ah.Dropped() == 0 {
		t.Fatalf("drop count should include records after Close")
	}
	ah.Close() // idempotent
}

func TestAsyncHandlerWithAttrs(t *testing.T) {
	out := new(lockedBuffer)
	ah := NewAsyncHandler(buildHandler(ModeProd, out), 8)
	slog.New(ah).With(slog.String("svc", "floatrand")).Info("hello")
	ah.Close()
	if !strings.Contains(out.String(), `"svc":"floatrand"`) {
		t.Fatalf("attrs lost: %s", out.String())
	}
}

func TestParseLogMode(t *testing.T) {
	for _, m := range []LogMode{ModeDev, ModeProd, ModeSilence} {
		got, err := ParseLogMode(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip %s: got %s err %v", m, got, err)
		}
	}
	if m, err := ParseLogMode(""); err != nil || m != ModeDev {
		t.Fatalf("empty should be dev")
	}
	if _, err := ParseLogMode("loud"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestNilHandlerReady(t *testing.T) {
	var ah *AsyncHandler
	if ah.Ready() || ah.Dropped() != 0 {
		t.Fatalf("nil handler should be not ready")
	}
	ah.Close()
}
