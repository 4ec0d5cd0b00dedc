package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

func TestStart_NothingEnabled(t *testing.T) {
	stack, err := Start(context.Background(), config.Config{ServiceName: "tournament-engine-api"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := stack.Enabled(); len(got) != 0 {
		t.Fatalf("expected nothing enabled, got %v", got)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_TracingWithoutDSNIsSkipped(t *testing.T) {
	stack, err := Start(context.Background(), config.Config{UptraceEnabled: true}, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := stack.Enabled(); len(got) != 0 {
		t.Fatalf("expected tracing to be skipped, got %v", got)
	}
}

func TestStack_ShutdownRunsInReverseAndJoinsErrors(t *testing.T) {
	var order []string
	boom := errors.New("boom")
	stack := &Stack{logger: logging.NewNop(), hooks: []hook{
		{name: "tracing", stop: func(context.Context) error { order = append(order, "tracing"); return nil }},
		{name: "pprof", stop: func(context.Context) error { order = append(order, "pprof"); return boom }},
	}}

	err := stack.Shutdown(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined hook error, got %v", err)
	}
	if len(order) != 2 || order[0] != "pprof" || order[1] != "tracing" {
		t.Fatalf("unexpected shutdown order: %v", order)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown should be a no-op, got %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from pprof index, got %d", rec.Code)
	}
}
