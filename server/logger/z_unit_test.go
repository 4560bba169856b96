package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/zintix-labs/coverlab/errs"
	"github.com/zintix-labs/coverlab/server/logger"
)

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestAsyncHandlerFlushesOnClose(t *testing.T) {
	var out syncBuffer
	ah := logger.NewAsyncHandler(slog.NewTextHandler(&out, nil), 16)
	log := slog.New(ah).With("run_id", "abc")
	log.Info("run.done", "total", -35)
	ah.Close()

	got := out.String()
	if !strings.Contains(got, "run.done") || !strings.Contains(got, "run_id=abc") || !strings.Contains(got, "total=-35") {
		t.Fatalf("unexpected log output: %q", got)
	}

	log.Info("after close")
	if ah.Dropped() != 1 {
		t.Fatalf("log after close should be dropped, got %d", ah.Dropped())
	}
	if err := ah.Handle(context.Background(), slog.Record{}); err != nil {
		t.Fatalf("handle should never fail: %v", err)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]logger.LogMode{"": logger.ModeDev, "DEV": logger.ModeDev, "prod": logger.ModeProd, "silence": logger.ModeSilence}
	for in, want := range cases {
		got, err := logger.ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v, %v", in, got, err)
		}
	}
	if _, err := logger.ParseMode("loud"); !errs.IsInvalid(err) {
		t.Fatalf("unknown mode should be invalid, got %v", err)
	}
}
