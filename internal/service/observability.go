package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger     zerolog.Logger
	logSuccess bool
}

// NewLogUseCaseObserver logs failed use cases at error level. With
// logSuccess set, successful ones are logged at info level too.
func NewLogUseCaseObserver(logger zerolog.Logger, logSuccess bool) UseCaseObserver {
	return &logUseCaseObserver{logger: logger, logSuccess: logSuccess}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	var ev *zerolog.Event
	switch {
	case event.Err != nil:
		ev = o.logger.Error().Err(event.Err)
	case o.logSuccess:
		ev = o.logger.Info()
	default:
		ev = o.logger.Debug()
	}
	ev.Str("use_case", event.Name).
		Dur("duration", event.Duration).
		Bool("success", event.Success).
		Fields(event.Fields).
		Msg("service_use_case")
}

// UseCaseRecorder is the metrics sink fed by NewMetricsUseCaseObserver.
type UseCaseRecorder interface {
	RecordUseCase(name string, success bool, d time.Duration)
}

type metricsUseCaseObserver struct {
	recorder UseCaseRecorder
}

// NewMetricsUseCaseObserver forwards outcome and duration of every use case
// to r.
func NewMetricsUseCaseObserver(r UseCaseRecorder) UseCaseObserver {
	if r == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{recorder: r}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.recorder.RecordUseCase(event.Name, event.Success, event.Duration)
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

// useCaseObserverOrNoop fans out to every non-nil observer.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}
