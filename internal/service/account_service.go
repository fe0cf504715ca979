package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/lluuk/tweeter-api/internal/domain"
	"github.com/lluuk/tweeter-api/internal/repo"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("email must be a valid address")
	ErrInvalidName        = errors.New("name is required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New(`password must be at least 7 characters and cannot contain "password"`)
	ErrSelfFollow         = errors.New("cannot follow yourself")
)

const minPasswordLen = 7

var validate = validator.New()

// AccountService owns account identity, credentials and the follow graph.
type AccountService struct {
	repo repo.AccountRepo
}

// NewAccountService returns a new AccountService.
func NewAccountService(r repo.AccountRepo) *AccountService {
	return &AccountService{repo: r}
}

// Register creates an account. The email is case-folded before storage so
// uniqueness is case-insensitive; the password is bcrypt-hashed and the
// plaintext never persisted.
func (s *AccountService) Register(ctx context.Context, email, name, password string) (dom.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if err := validate.Var(email, "required,email"); err != nil {
		return dom.Account{}, ErrInvalidEmail
	}
	if name == "" {
		return dom.Account{}, ErrInvalidName
	}
	if len(password) < minPasswordLen || strings.Contains(strings.ToLower(password), "password") {
		return dom.Account{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.Account{}, err
	}
	a, err := s.repo.Create(ctx, dom.Account{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.Account{}, ErrEmailTaken
		}
		return dom.Account{}, err
	}
	return a, nil
}

// ValidateCredentials checks email and password; returns the account if valid.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) ValidateCredentials(ctx context.Context, email, password string) (dom.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return dom.Account{}, ErrInvalidCredentials
	}
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrInvalidCredentials
		}
		return dom.Account{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return dom.Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// GetByID returns the account by ID.
func (s *AccountService) GetByID(ctx context.Context, id string) (dom.Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	return a, nil
}

// Follow adds the actor->target edge to both documents and returns the updated
// target. Following an account twice is a no-op; following yourself is
// rejected.
func (s *AccountService) Follow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	if actorID == targetID {
		return dom.Account{}, ErrSelfFollow
	}
	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	target, err := s.repo.AddFollow(ctx, actorID, targetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	return target, nil
}

// Unfollow removes the actor->target edge from both documents and returns the
// updated target. Removing an edge that does not exist is a no-op.
func (s *AccountService) Unfollow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	if _, err := s.repo.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	target, err := s.repo.RemoveFollow(ctx, actorID, targetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.Account{}, ErrNotFound
		}
		return dom.Account{}, err
	}
	return target, nil
}
