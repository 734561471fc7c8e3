package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeMarker struct {
	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
	ran   chan struct{}
}

func newFakeMarker(n int64, err error) *fakeMarker {
	return &fakeMarker{n: n, err: err, ran: make(chan struct{}, 16)}
}

func (f *fakeMarker) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, now)
	f.mu.Unlock()
	select {
	case f.ran <- struct{}{}:
	default:
	}
	return f.n, f.err
}

func (f *fakeMarker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitRuns(t *testing.T, f *fakeMarker, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.ran:
		case <-time.After(5 * time.Second):
			t.Fatalf("sweep ran %d times, want at least %d", f.count(), n)
		}
	}
}

func TestOverdueSweep_RunsImmediatelyAndOnTick(t *testing.T) {
	marker := newFakeMarker(0, nil)
	w := NewOverdueSweep(marker, zap.NewNop(), 10*time.Millisecond)

	w.Start()
	waitRuns(t, marker, 3)
	w.Stop()

	after := marker.count()
	time.Sleep(30 * time.Millisecond)
	if marker.count() != after {
		t.Error("sweep kept running after Stop")
	}
}

func TestOverdueSweep_StopBeforeTick(t *testing.T) {
	marker := newFakeMarker(0, nil)
	w := NewOverdueSweep(marker, zap.NewNop(), time.Hour)

	w.Start()
	waitRuns(t, marker, 1)
	w.Stop()
	w.Stop()

	if got := marker.count(); got != 1 {
		t.Errorf("expected only the initial sweep, got %d", got)
	}
}

func TestOverdueSweep_UsesClock(t *testing.T) {
	marker := newFakeMarker(0, nil)
	w := NewOverdueSweep(marker, zap.NewNop(), time.Hour)
	fixed := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.Sweep()

	if len(marker.calls) != 1 || !marker.calls[0].Equal(fixed) {
		t.Errorf("expected one sweep at %v, got %v", fixed, marker.calls)
	}
}

func TestOverdueSweep_Logging(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		err       error
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{"marked", 3, nil, zapcore.InfoLevel, "payments marked overdue"},
		{"failed", 0, errors.New("connection reset"), zapcore.ErrorLevel, "overdue sweep failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			w := NewOverdueSweep(newFakeMarker(tt.n, tt.err), zap.New(core), time.Hour)

			w.Sweep()

			entries := logs.FilterMessage(tt.wantMsg).All()
			if len(entries) != 1 {
				t.Fatalf("expected one %q entry, got %d", tt.wantMsg, len(entries))
			}
			if entries[0].Level != tt.wantLevel {
				t.Errorf("level %v, want %v", entries[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestOverdueSweep_QuietWhenNothingMarked(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewOverdueSweep(newFakeMarker(0, nil), zap.New(core), time.Hour)

	w.Sweep()

	if logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", logs.Len())
	}
}
