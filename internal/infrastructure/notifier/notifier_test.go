package notifier_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/notifier"
	"github.com/hermanas/caja/internal/usecase/mocks"
)

func TestLogNotifierDispatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	n := notifier.NewLogNotifier(logger)

	intent := domain.Intent{
		Type:    domain.IntentReconciliationDiscrepancy,
		Title:   "Diferencia de caja",
		Message: "arqueo con diferencia",
		Payload: map[string]any{"cash_count_id": "cc-1"},
	}

	if err := n.Dispatch(context.Background(), intent); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, string(domain.IntentReconciliationDiscrepancy)) {
		t.Fatalf("expected output to contain intent type, got %q", output)
	}
	if !strings.Contains(output, "cc-1") {
		t.Fatalf("expected output to contain payload, got %q", output)
	}
}

func TestAsyncNotifierForwardsIntents(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockNotifier()
	n := notifier.NewAsyncNotifier(inner, 8, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = n.Start(ctx)
		close(done)
	}()

	intent := domain.Intent{Type: domain.IntentPaymentApproved, Title: "Aprobado"}
	if err := n.Dispatch(context.Background(), intent); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for len(inner.Dispatched()) == 0 {
		select {
		case <-deadline:
			t.Fatalf("intent was never forwarded")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done

	got := inner.Dispatched()
	if len(got) != 1 || got[0].Type != domain.IntentPaymentApproved {
		t.Fatalf("expected one forwarded intent, got %+v", got)
	}
}

func TestAsyncNotifierDropsWhenFull(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockNotifier()
	// Worker never started, so the buffer fills up.
	n := notifier.NewAsyncNotifier(inner, 1, zerolog.Nop())

	if err := n.Dispatch(context.Background(), domain.Intent{Type: domain.IntentLowStock}); err != nil {
		t.Fatalf("unexpected dispatch error: %v", err)
	}
	if err := n.Dispatch(context.Background(), domain.Intent{Type: domain.IntentLowStock}); err != nil {
		t.Fatalf("expected overflow dispatch to succeed silently, got %v", err)
	}
}
