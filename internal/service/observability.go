package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/metrics"
	"github.com/alexanderramin/mapty/internal/store"
	"github.com/sirupsen/logrus"
)

const (
	UseCaseStartup = "startup"
	UseCaseRecord  = "record"
	UseCaseReset   = "reset"
	UseCaseImport  = "import"
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
	logger logrus.FieldLogger
}

// NewLogUseCaseObserver writes service use-case events to logger.
func NewLogUseCaseObserver(logger logrus.FieldLogger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	fields := make(logrus.Fields, 3+len(event.Fields))
	fields["use_case"] = event.Name
	fields["duration_ms"] = event.Duration.Milliseconds()
	fields["success"] = event.Success
	for k, v := range event.Fields {
		fields[k] = v
	}
	entry := o.logger.WithFields(fields)

	switch {
	case event.Err == nil && fields["load_error"] != nil:
		entry.Warn("service_use_case")
	case event.Err == nil:
		entry.Info("service_use_case")
	case domain.IsValidation(event.Err) || errors.Is(event.Err, domain.ErrUnknownKind):
		entry.WithError(event.Err).Warn("service_use_case")
	default:
		entry.WithError(event.Err).Error("service_use_case")
	}
}

type metricsUseCaseObserver struct {
	recorder metrics.Recorder
}

// NewMetricsUseCaseObserver turns use-case events into prometheus samples.
func NewMetricsUseCaseObserver(recorder metrics.Recorder) UseCaseObserver {
	if recorder == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{recorder: recorder}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	if saved, ok := event.Fields["saved"].(bool); ok {
		o.recorder.IncSave(saved)
	}

	switch event.Name {
	case UseCaseStartup:
		if outcome, ok := event.Fields["outcome"].(string); ok {
			o.recorder.IncLoad(outcome)
		}
		o.recorder.ObservePersistenceDuration("load", event.Duration)
	case UseCaseRecord:
		var verr *domain.ValidationError
		switch {
		case errors.As(event.Err, &verr):
			o.recorder.IncValidationFailure(string(verr.Reason))
		case errors.Is(event.Err, domain.ErrUnknownKind):
			o.recorder.IncValidationFailure("unknown_kind")
		}
		if event.Fields["recorded"] == true {
			o.recorder.ObservePersistenceDuration("save", event.Duration)
		}
	}
}

// SubscribeStoreMetrics counts workouts as the store reports them and keeps
// the in-store gauge current.
func SubscribeStoreMetrics(st *store.Store, recorder metrics.Recorder) {
	if recorder == nil {
		return
	}
	st.Subscribe(func(e store.Event) {
		switch e.Type {
		case store.EventAdded:
			recorder.IncRecorded(string(e.Workout.Kind))
		case store.EventRestored:
			recorder.IncRestored(string(e.Workout.Kind))
		}
		recorder.SetWorkoutsInStore(st.Len())
	})
}

type multiUseCaseObserver []UseCaseObserver

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

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
