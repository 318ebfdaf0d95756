package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/auth"
	"github.com/shreyansh232/wysa/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrMissingCredentials = errors.New("nickname and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrNicknameTaken      = errors.New("nickname already taken")
	// ErrInvalidCredentials covers both an unknown nickname and a wrong
	// password so responses cannot be used to enumerate nicknames.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type SignupRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type AuthService struct {
	users     storage.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users storage.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup creates a user and mints a session token. Uniqueness of the
// nickname is enforced by the store on insert, not checked up front.
func (s *AuthService) Signup(ctx context.Context, nickname, password string) (*internal.User, string, error) {
	if nickname == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &internal.User{
		ID:           uuid.NewString(),
		Nickname:     nickname,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateNickname) {
			return nil, "", ErrNicknameTaken
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, nickname, password string) (*internal.User, string, error) {
	if nickname == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	user, err := s.users.GetUserByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Nickname, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
