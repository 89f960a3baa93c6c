package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/placehub/placehub/internal/auth"
	"github.com/placehub/placehub/internal/metrics"
	"github.com/placehub/placehub/internal/model"
	"github.com/placehub/placehub/internal/repository"
)

// User service errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignupFailed       = errors.New("signup failed")
	ErrLoginFailed        = errors.New("login failed")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

// UserService handles identity issuance and account lookups.
type UserService struct {
	repo    *repository.Repository
	tokens  *auth.TokenManager
	logger  *slog.Logger
	metrics metrics.Recorder

	// dummyHash is compared against when a login targets an unknown
	// email, so the unknown-email and wrong-password outcomes are
	// observationally identical.
	dummyHash string
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, tokens *auth.TokenManager, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	dummyHash, err := auth.HashPassword("placehub-login-padding")
	if err != nil {
		// Hashing a constant can only fail if the primitive is broken;
		// leave empty and let VerifyPassword surface it.
		dummyHash = ""
	}
	return &UserService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		metrics:   recorder,
		dummyHash: dummyHash,
	}
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	UserID string
	Email  string
	Token  string
}

// SignupInput defines input for creating an account.
type SignupInput struct {
	Name      string
	Email     string
	Password  string
	ImagePath string
}

// Signup registers a new account with an empty place set and issues an
// identity token. Hashing and persistence failures surface as a generic
// ErrSignupFailed without revealing which step failed.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	user := &model.User{
		ID:           ulid.Make().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		ImagePath:    input.ImagePath,
		PlaceIDs:     []string{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// Handle the lookup/create race on email uniqueness.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignupFailed, err)
	}

	s.metrics.IncSignup()

	return &AuthResult{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

// Login verifies credentials and issues an identity token. An unknown
// email and a wrong password both return ErrInvalidCredentials; the
// password check runs either way so the two cases cannot be told apart
// by timing.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	match, verr := auth.VerifyPassword(password, hash)
	if verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, verr)
	}

	if user == nil || !match {
		s.metrics.IncLogin(false)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.metrics.IncLogin(true)

	return &AuthResult{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}, nil
}

// ListUsers returns all registered users. Password hashes never serialize.
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.ListUsers(ctx)
}

// validateSignup enforces the minimal syntactic rules for signup.
func validateSignup(input SignupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !emailRegex.MatchString(input.Email) {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}
