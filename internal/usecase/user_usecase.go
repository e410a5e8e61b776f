package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/infrastructure/metrics"
)

// UserUseCase handles user management and credential checks.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewUserUseCase creates a new user use case.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
	}
}

// WithMetrics enables Prometheus counters on this use case.
func (uc *UserUseCase) WithMetrics(m *metrics.Metrics) *UserUseCase {
	uc.metrics = m
	return uc
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Username string
	Name     string
	Password string
	Role     domain.Role
}

// CreateUser creates a new user with a bcrypt-hashed password.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, errors.New("username is required")
	}
	if len(input.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	if !input.Role.IsValid() {
		return nil, errors.New("invalid role")
	}

	existing, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, errors.New("user with this username already exists")
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Username:       input.Username,
		Name:           input.Name,
		HashedPassword: hashedPassword,
		Role:           input.Role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Return a sanitized copy; the stored record keeps its hash.
	out := *user
	out.HashedPassword = ""
	return &out, nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Username string
	Password string
}

// Authenticate verifies user credentials. A missing user and a bad
// password return the same error so the response does not leak which
// usernames exist.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, uc.authFailed()
	}

	if !user.Active {
		return nil, uc.authFailed()
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, uc.authFailed()
	}

	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues("success").Inc()
	}

	user.HashedPassword = ""
	return user, nil
}

func (uc *UserUseCase) authFailed() error {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues("failure").Inc()
	}
	return domain.ErrInvalidCredentials
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// EnsureSeedUser creates the bootstrap admin user when it does not
// exist yet. Idempotent across restarts.
func (uc *UserUseCase) EnsureSeedUser(ctx context.Context, username, name, password string) error {
	if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
		return nil
	}

	_, err := uc.CreateUser(ctx, CreateUserInput{
		Username: username,
		Name:     name,
		Password: password,
		Role:     domain.RoleAdmin,
	})
	return err
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
