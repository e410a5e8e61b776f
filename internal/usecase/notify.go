package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hermanas/caja/internal/domain"
)

// dispatchIntents forwards intents to the notifier, best-effort. A
// dispatch failure never rolls back the already-persisted state change;
// notifications are observability, not correctness-critical state.
func dispatchIntents(ctx context.Context, notifier Notifier, logger zerolog.Logger, intents []domain.Intent) {
	if notifier == nil {
		return
	}

	for _, intent := range intents {
		if err := notifier.Dispatch(ctx, intent); err != nil {
			logger.Error().
				Err(err).
				Str("intent_type", string(intent.Type)).
				Msg("failed to dispatch notification intent")
		}
	}
}
