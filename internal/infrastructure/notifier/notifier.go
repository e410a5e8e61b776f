package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
	"github.com/hermanas/caja/internal/usecase"
)

// LogNotifier is the terminal intent sink: it renders each intent as a
// structured log line for an external dispatcher (push, mail, chat) to
// pick up. It never returns an error; dropped notifications must not
// fail business operations.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Dispatch logs one intent.
func (n *LogNotifier) Dispatch(ctx context.Context, intent domain.Intent) error {
	payload, err := json.Marshal(intent.Payload)
	if err != nil {
		payload = []byte("{}")
	}

	n.logger.Info().
		Str("intent_type", string(intent.Type)).
		Str("title", intent.Title).
		Str("message", intent.Message).
		RawJSON("payload", payload).
		Msg("notification intent")

	return nil
}

// AsyncNotifier buffers intents and forwards them to an inner notifier
// from a background worker, so a slow sink cannot stall request
// handling. A full buffer drops the intent with a warning.
type AsyncNotifier struct {
	inner   usecase.Notifier
	queue   chan domain.Intent
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewAsyncNotifier creates a new AsyncNotifier with the given buffer size.
func NewAsyncNotifier(inner usecase.Notifier, bufferSize int, logger zerolog.Logger) *AsyncNotifier {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	return &AsyncNotifier{
		inner:  inner,
		queue:  make(chan domain.Intent, bufferSize),
		logger: logger,
	}
}

// WithMetrics enables Prometheus counters on this notifier.
func (n *AsyncNotifier) WithMetrics(m *metrics.Metrics) *AsyncNotifier {
	n.metrics = m
	return n
}

// Dispatch enqueues an intent without blocking.
func (n *AsyncNotifier) Dispatch(ctx context.Context, intent domain.Intent) error {
	select {
	case n.queue <- intent:
	default:
		if n.metrics != nil {
			n.metrics.IntentsDropped.Inc()
		}
		n.logger.Warn().
			Str("intent_type", string(intent.Type)).
			Msg("notification queue full, intent dropped")
	}

	return nil
}

// Start drains the queue until the context is cancelled. Remaining
// intents are flushed with a short grace period on shutdown.
func (n *AsyncNotifier) Start(ctx context.Context) error {
	n.logger.Info().Int("buffer", cap(n.queue)).Msg("notification worker started")

	for {
		select {
		case <-ctx.Done():
			n.flush()
			n.logger.Info().Msg("notification worker shutting down")
			return ctx.Err()
		case intent := <-n.queue:
			n.forward(intent)
		}
	}
}

func (n *AsyncNotifier) forward(intent domain.Intent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := n.inner.Dispatch(ctx, intent); err != nil {
		n.logger.Error().
			Err(err).
			Str("intent_type", string(intent.Type)).
			Msg("failed to forward notification intent")
		return
	}

	if n.metrics != nil {
		n.metrics.IntentsDispatched.WithLabelValues(string(intent.Type)).Inc()
	}
}

func (n *AsyncNotifier) flush() {
	for {
		select {
		case intent := <-n.queue:
			n.forward(intent)
		default:
			return
		}
	}
}
