package perf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"", "cpu", "heap", "allocs"} {
		if _, err := ParseMode(s); err != nil {
			t.Fatalf("%q should parse: %v", s, err)
		}
	}
	if _, err := ParseMode("block"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestRunWritesProfile(t *testing.T) {
	dir := t.TempDir()
	for _, m := range []Mode{ModeHeap, ModeAllocs, ModeCPU} {
		ran := false
		if err := Run(func() { ran = true }, m, dir); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if !ran {
			t.Fatalf("%s: exe not executed", m)
		}
		if _, err := os.Stat(filepath.Join(dir, string(m)+".pprof")); err != nil {
			t.Fatalf("%s: profile missing: %v", m, err)
		}
	}
}

func TestRunNone(t *testing.T) {
	ran := false
	if err := Run(func() { ran = true }, ModeNone, ""); err != nil || !ran {
		t.Fatalf("none mode should just run exe, err=%v", err)
	}
}
