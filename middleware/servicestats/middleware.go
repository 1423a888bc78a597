package servicestats

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Middleware counts calls, errors and latency of every request-reply service.
type Middleware struct {
	name   string
	config Config
	logger types.Logger

	mu    sync.RWMutex
	stats map[string]*Stats
}

// Stats is a snapshot of one service's counters.
type Stats struct {
	Calls        int64         `json:"calls"`
	Errors       int64         `json:"errors"`
	Slow         int64         `json:"slow"`
	TotalLatency time.Duration `json:"total_latency"`
}

// AverageLatency returns the mean latency per call.
func (s Stats) AverageLatency() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.Calls)
}

// Compile-time interface checks
var _ mono.Module = (*Middleware)(nil)
var _ mono.MiddlewareModule = (*Middleware)(nil)
var _ mono.HealthCheckableModule = (*Middleware)(nil)

// New creates a service stats middleware.
func New(logger types.Logger, opts ...Option) *Middleware {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return &Middleware{
		name:   "service-stats",
		config: config,
		logger: logger,
		stats:  make(map[string]*Stats),
	}
}

// Name returns the middleware name.
func (m *Middleware) Name() string {
	return m.name
}

func (m *Middleware) Start(_ context.Context) error {
	m.logger.Info("Service stats middleware started", "slow_threshold", m.config.SlowThreshold)
	return nil
}

func (m *Middleware) Stop(_ context.Context) error {
	if m.config.LogOnStop {
		snapshot := m.Snapshot()
		for _, service := range sortedKeys(snapshot) {
			s := snapshot[service]
			m.logger.Info("Service stats",
				"service", service,
				"calls", s.Calls,
				"errors", s.Errors,
				"slow", s.Slow,
				"avg_latency", s.AverageLatency())
		}
	}
	m.logger.Info("Service stats middleware stopped")
	return nil
}

// Health reports aggregate call counters.
func (m *Middleware) Health(_ context.Context) mono.HealthStatus {
	var calls, errs int64
	for _, s := range m.Snapshot() {
		calls += s.Calls
		errs += s.Errors
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"calls":  calls,
			"errors": errs,
		},
	}
}

// OnModuleLifecycle logs module start and stop timings.
func (m *Middleware) OnModuleLifecycle(
	_ context.Context,
	event types.ModuleLifecycleEvent,
) types.ModuleLifecycleEvent {
	switch event.Type {
	case types.ModuleStartedEvent:
		m.logger.Debug("Module started", "module", event.ModuleName, "startup", event.Duration)
	case types.ModuleStoppedEvent:
		if event.Error != nil {
			m.logger.Warn("Module stopped with error", "module", event.ModuleName, "error", event.Error)
		}
	}
	return event
}

// OnServiceRegistration wraps request-reply handlers to record their stats.
func (m *Middleware) OnServiceRegistration(
	_ context.Context,
	reg types.ServiceRegistration,
) types.ServiceRegistration {
	if reg.Type != types.ServiceTypeRequestReply || reg.RequestHandler == nil {
		return reg
	}
	reg.RequestHandler = m.wrap(reg.RequestHandler, reg.Name)
	return reg
}

// OnConfigurationChange passes through configuration events unchanged.
func (m *Middleware) OnConfigurationChange(
	_ context.Context,
	event types.ConfigurationEvent,
) types.ConfigurationEvent {
	return event
}

// OnOutgoingMessage passes through outgoing messages unchanged.
func (m *Middleware) OnOutgoingMessage(
	octx types.OutgoingMessageContext,
) types.OutgoingMessageContext {
	return octx
}

// OnEventConsumerRegistration passes through event consumer registrations unchanged.
func (m *Middleware) OnEventConsumerRegistration(
	_ context.Context,
	entry types.EventConsumerEntry,
) types.EventConsumerEntry {
	return entry
}

// OnEventStreamConsumerRegistration passes through event stream consumer registrations unchanged.
func (m *Middleware) OnEventStreamConsumerRegistration(
	_ context.Context,
	entry types.EventStreamConsumerEntry,
) types.EventStreamConsumerEntry {
	return entry
}

func (m *Middleware) wrap(original types.RequestReplyHandler, service string) types.RequestReplyHandler {
	return func(ctx context.Context, req *types.Msg) ([]byte, error) {
		start := time.Now()
		resp, err := original(ctx, req)
		m.record(service, time.Since(start), err)
		return resp, err
	}
}

func (m *Middleware) record(service string, latency time.Duration, err error) {
	slow := m.config.SlowThreshold > 0 && latency >= m.config.SlowThreshold

	m.mu.Lock()
	s, ok := m.stats[service]
	if !ok {
		s = &Stats{}
		m.stats[service] = s
	}
	s.Calls++
	s.TotalLatency += latency
	if err != nil {
		s.Errors++
	}
	if slow {
		s.Slow++
	}
	m.mu.Unlock()

	if slow {
		m.logger.Warn("Slow service call", "service", service, "latency", latency)
	}
	if err != nil {
		m.logger.Error("Service call failed", "service", service, "error", err)
	}
}

// Snapshot returns a copy of the counters keyed by service name.
func (m *Middleware) Snapshot() map[string]Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]Stats, len(m.stats))
	for name, s := range m.stats {
		result[name] = *s
	}
	return result
}

func sortedKeys(stats map[string]Stats) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
