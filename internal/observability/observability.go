package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-engine/internal/config"
	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
)

type stopFunc func(context.Context) error

type hook struct {
	name string
	stop stopFunc
}

// Stack is the set of telemetry components that were switched on by config.
type Stack struct {
	hooks  []hook
	logger *logging.Logger
}

// Start brings up tracing, continuous profiling and the pprof listener in that order.
// Components that are disabled in cfg are skipped. On error, whatever already started
// is stopped before returning.
func Start(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (stopFunc, error)
	}{
		{name: "tracing", start: startTracing},
		{name: "profiling", start: startProfiling},
		{name: "pprof", start: startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("start %s: %w", step.name, err), s.Shutdown(ctx))
		}
		if stop != nil {
			s.hooks = append(s.hooks, hook{name: step.name, stop: stop})
		}
	}
	return s, nil
}

// Enabled lists the components that are running.
func (s *Stack) Enabled() []string {
	out := make([]string, 0, len(s.hooks))
	for _, h := range s.hooks {
		out = append(out, h.name)
	}
	return out
}

// Shutdown stops components in reverse start order so traces from the pprof and profiler
// shutdown still reach the exporter.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.hooks) - 1; i >= 0; i-- {
		if err := s.hooks[i].stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.hooks[i].name, err))
		}
	}
	s.hooks = nil
	return errors.Join(errs...)
}
