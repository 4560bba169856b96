package app_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zintix-labs/coverlab/server/app"
)

type fakeComp struct {
	stop     chan struct{}
	runErr   error
	shutdown atomic.Int32
}

func newFake(runErr error) *fakeComp {
	return &fakeComp{stop: make(chan struct{}), runErr: runErr}
}

func (f *fakeComp) Run() error {
	if f.runErr != nil {
		return f.runErr
	}
	<-f.stop
	return nil
}

func (f *fakeComp) Shutdown(ctx context.Context) error {
	if f.shutdown.Add(1) == 1 && f.runErr == nil {
		close(f.stop)
	}
	return nil
}

func TestRunContextCanceled(t *testing.T) {
	a, b := newFake(nil), newFake(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := app.NewWith(nil, a, b).RunContext(ctx); err != nil {
		t.Fatalf("cancel should stop cleanly, got %v", err)
	}
	if a.shutdown.Load() != 1 || b.shutdown.Load() != 1 {
		t.Fatalf("every component must be shut down once")
	}
}

func TestRunContextComponentError(t *testing.T) {
	boom := errors.New("listen failed")
	ok, bad := newFake(nil), newFake(boom)
	err := app.NewWith(nil, ok, bad).RunContext(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected component error, got %v", err)
	}
	if ok.shutdown.Load() != 1 {
		t.Fatalf("healthy component must be shut down")
	}
}
