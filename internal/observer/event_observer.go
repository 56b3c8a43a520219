package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ComparisonEvent describes progress of a comparison run
type ComparisonEvent struct {
	EventType EventType              `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	RunID     string                 `json:"run_id"`
	Index     int                    `json:"index,omitempty"`
	Left      string                 `json:"left,omitempty"`
	Right     string                 `json:"right,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Error     string                 `json:"error,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of comparison event
type EventType string

const (
	RunStarted   EventType = "run_started"
	RunCompleted EventType = "run_completed"
	RunFailed    EventType = "run_failed"
	PairCompared EventType = "pair_compared"
	PairMissing  EventType = "pair_missing"
	PairFailed   EventType = "pair_failed"
	RenameHinted EventType = "rename_hinted"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ComparisonEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ComparisonEvent)
}

// LoggingObserver logs comparison events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles comparison events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ComparisonEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
		"run_id":     event.RunID,
	}
	if event.Index > 0 {
		fields["index"] = event.Index
		fields["left"] = event.Left
		fields["right"] = event.Right
	}
	if event.Duration > 0 {
		fields["duration"] = event.Duration
	}
	if event.Error != "" {
		fields["error"] = event.Error
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case RunStarted:
		entry.Info("Comparison run started")
	case RunCompleted:
		entry.Info("Comparison run completed")
	case RunFailed:
		entry.Error("Comparison run failed")
	case PairCompared:
		entry.Debug("Pair compared")
	case PairMissing:
		entry.Info("Pair has a missing counterpart")
	case PairFailed:
		entry.Warn("Pair comparison failed")
	case RenameHinted:
		entry.Info("Possible rename detected")
	default:
		entry.Info("Comparison event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// Metrics is a snapshot of MetricsObserver counters
type Metrics struct {
	Runs          int64         `json:"runs"`
	FailedRuns    int64         `json:"failed_runs"`
	PairsCompared int64         `json:"pairs_compared"`
	PairsMissing  int64         `json:"pairs_missing"`
	PairsFailed   int64         `json:"pairs_failed"`
	TotalPairTime time.Duration `json:"total_pair_time"`
	AvgPairTime   time.Duration `json:"avg_pair_time"`
	TotalRunTime  time.Duration `json:"total_run_time"`
}

// MetricsObserver collects metrics from comparison events
type MetricsObserver struct {
	mu      sync.RWMutex
	metrics Metrics
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles comparison events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event ComparisonEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case RunStarted:
		o.metrics.Runs++
	case RunCompleted:
		o.metrics.TotalRunTime += event.Duration
	case RunFailed:
		o.metrics.FailedRuns++
	case PairCompared:
		o.metrics.PairsCompared++
		o.metrics.TotalPairTime += event.Duration
	case PairMissing:
		o.metrics.PairsMissing++
	case PairFailed:
		o.metrics.PairsFailed++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() Metrics {
	o.mu.RLock()
	defer o.mu.RUnlock()

	m := o.metrics
	if m.PairsCompared > 0 {
		m.AvgPairTime = m.TotalPairTime / time.Duration(m.PairsCompared)
	}
	return m
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers delivers the event to all observers concurrently and
// returns once every observer has handled it.
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ComparisonEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	var wg sync.WaitGroup
	for _, observer := range observers {
		wg.Add(1)
		go func(obs Observer) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
	wg.Wait()
}
