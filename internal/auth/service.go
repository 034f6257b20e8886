package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/parlorchat/parlor-server/internal/store"
)

var (
	// ErrInvalidContact is returned when the contact is empty or malformed.
	ErrInvalidContact = errors.New("invalid contact")
	// ErrInvalidUsername is returned when the username doesn't meet constraints.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrCodeInvalid is returned when no valid pending code matches.
	ErrCodeInvalid = errors.New("invalid or expired code")
)

const codeLength = 6

// Service provides OTP verification and token issuance. It is a collaborator
// next to the chat core: the hub never consults it.
type Service struct {
	store     store.UserStore
	codes     *CodeStore
	jwtConfig *JWTConfig
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates a new verification service.
func NewService(userStore store.UserStore, jwtConfig *JWTConfig, ttl time.Duration) *Service {
	return &Service{
		store:     userStore,
		codes:     NewCodeStore(),
		jwtConfig: jwtConfig,
		ttl:       ttl,
		now:       time.Now,
	}
}

// RequestCode issues a fresh verification code for a contact and returns it
// for delivery by the caller. Only a bcrypt hash is retained.
func (s *Service) RequestCode(ctx context.Context, contact string) (string, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return "", ErrInvalidContact
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	s.codes.Put(contact, hash, s.now().Add(s.ttl))
	return code, nil
}

// VerifyCode checks a pending code, claims the username for the contact and
// returns a signed token. A code can be used at most once.
func (s *Service) VerifyCode(ctx context.Context, contact, code, username string) (string, error) {
	contact = strings.TrimSpace(contact)
	username = strings.TrimSpace(username)
	if contact == "" {
		return "", ErrInvalidContact
	}
	if username == "" || len(username) > 32 {
		return "", ErrInvalidUsername
	}

	hash, ok := s.codes.Take(contact, s.now())
	if !ok {
		return "", ErrCodeInvalid
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return "", ErrCodeInvalid
	}

	user, err := s.store.UpsertUser(ctx, contact, username)
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}

	token, err := GenerateToken(s.jwtConfig, user.ID, user.Username, user.Contact)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ValidateToken validates a token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

func generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
