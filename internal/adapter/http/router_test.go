package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/adapter/http/handler"
	"github.com/hermanas/caja/internal/adapter/http/middleware"
	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/auth"
	"github.com/hermanas/caja/internal/usecase"
	"github.com/hermanas/caja/internal/usecase/mocks"
)

type stubIdempotencyStore struct {
	checkAndSet func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if s.checkAndSet != nil {
		return s.checkAndSet(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func newTestRouter(t *testing.T, idempotencyStore usecase.IdempotencyStore) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	eventUC := usecase.NewEventUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockEventRepository(),
		mocks.NewMockProviderDirectory(),
		mocks.NewMockNotifier(),
		mocks.NewMockIDGenerator(),
		logger,
		domain.CapAndDrop,
	)
	registerUC := usecase.NewRegisterUseCase(
		mocks.NewMockRegisterRepository(),
		mocks.NewMockInventory(),
		mocks.NewMockProviderDirectory(),
		mocks.NewMockNotifier(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		logger,
		domain.DefaultTriggerConfig(),
	)
	cashCountUC := usecase.NewCashCountUseCase(
		mocks.NewMockCashCountRepository(),
		mocks.NewMockRegisterRepository(),
		mocks.NewMockNotifier(),
		mocks.NewMockIDGenerator(),
		logger,
		domain.DefaultTriggerConfig(),
	)

	userUC := usecase.NewUserUseCase(mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())
	if _, err := userUC.CreateUser(context.Background(), usecase.CreateUserInput{
		Username: "fede",
		Name:     "Federico",
		Password: "super-secret",
		Role:     domain.RoleAdmin,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return NewRouter(RouterConfig{
		EventHandler:     handler.NewEventHandler(eventUC),
		RegisterHandler:  handler.NewRegisterHandler(registerUC),
		CashCountHandler: handler.NewCashCountHandler(cashCountUC),
		AuthHandler:      handler.NewAuthHandler(userUC, jwtManager),
		HealthHandler:    handler.NewHealthHandler(nil, nil),
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Logger:           logger,
		AllowedOrigins:   []string{"*"},
	})
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	body, _ := json.Marshal(dto.LoginRequest{Username: "fede", Password: "super-secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	return resp.Token
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterRejectsUnauthenticatedRequests(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestRouterLoginAndAuthenticatedRequest(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router)

	body, _ := json.Marshal(dto.CreateEventRequest{
		ClientName:  "Maria Lopez",
		EventType:   "casamiento",
		EventDate:   time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		FinalBudget: decimal.NewFromInt(100000),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterCurrentUser(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Username != "fede" {
		t.Fatalf("expected the seeded user, got %+v", resp)
	}
}

func TestRouterIdempotencyReplay(t *testing.T) {
	store := &stubIdempotencyStore{
		checkAndSet: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"id":"evt-cached"}`), nil
		},
	}
	router := newTestRouter(t, store)
	token := login(t, router)

	body, _ := json.Marshal(dto.CreateEventRequest{
		ClientName:  "Maria Lopez",
		EventType:   "casamiento",
		EventDate:   time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		FinalBudget: decimal.NewFromInt(100000),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(middleware.IdempotencyKeyHeader, "evt-key-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected a replayed response, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != `{"id":"evt-cached"}` {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}
