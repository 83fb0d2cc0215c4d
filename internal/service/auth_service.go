package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/model"
	"github.com/studentbay/backend/internal/repository"
	"github.com/studentbay/backend/pkg/apperror"
	"github.com/studentbay/backend/pkg/pending"
	"github.com/studentbay/backend/pkg/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Verification tokens and the transient registrations carrying them
// live for 24 hours.
const verificationTTL = 24 * time.Hour

// DirectVerification is the development shortcut token the client sends
// together with a tempId to verify without the emailed token.
const DirectVerification = "direct_verification"

// RegisterResult is the outcome of a registration: a transient record
// awaiting verification.
type RegisterResult struct {
	TempID               string
	Email                string
	RequiresVerification bool
}

type LoginResult struct {
	Token    string
	UserData *dto.UserResponse
}

type AuthService interface {
	Register(ctx context.Context, in validation.RegisterInput) (*RegisterResult, []string, error)
	Verify(ctx context.Context, token, tempID string) (string, error)
	SkipVerification(ctx context.Context, tempID string) (string, error)
	SendVerification(ctx context.Context, userID string) (string, error)
	VerificationStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, []string, error)
}

type authService struct {
	users    repository.UserRepository
	pending  pending.Store
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, pendingStore pending.Store, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		pending:  pendingStore,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register validates the payload and parks the registration in the
// pending store. No durable user row exists until verification (or the
// skip shortcut) promotes it.
func (s *authService) Register(ctx context.Context, in validation.RegisterInput) (*RegisterResult, []string, error) {
	if errs := validation.ValidateRegister(in); len(errs) > 0 {
		return nil, errs, nil
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, apperror.Conflict("this email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tempID := uuid.NewString()
	token := uuid.NewString()
	reg := pending.Registration{
		Email:        in.Email,
		PasswordHash: string(hash),
		MemberType:   in.MemberType,
		Name:         in.Name,
		Token:        token,
		CreatedAt:    time.Now(),
	}

	if err := s.pending.Put(ctx, tempID, reg, verificationTTL); err != nil {
		return nil, nil, err
	}

	// Email delivery is simulated: the token lands in the server log.
	log.Printf("verification email sent to %s, token: %s", in.Email, token)

	return &RegisterResult{TempID: tempID, Email: in.Email, RequiresVerification: true}, nil, nil
}

// Verify promotes a pending registration into a verified user. It also
// accepts tokens that were re-issued to an existing unverified account
// via SendVerification.
func (s *authService) Verify(ctx context.Context, token, tempID string) (string, error) {
	var (
		reg pending.Registration
		err error
	)

	switch {
	case tempID != "" && (token == "" || token == DirectVerification):
		reg, err = s.pending.Get(ctx, tempID)
	case token != "":
		tempID, reg, err = s.pending.GetByToken(ctx, token)
	default:
		return "", apperror.BadRequest("a verification token or tempId is required")
	}

	if errors.Is(err, pending.ErrNotFound) {
		if token != "" && token != DirectVerification {
			return s.verifyDurableUser(ctx, token)
		}
		return "", apperror.BadRequest("invalid or expired verification token")
	}
	if err != nil {
		return "", err
	}

	userID, err := s.promote(ctx, reg, true)
	if err != nil {
		return "", err
	}

	_ = s.pending.Delete(ctx, tempID)
	return userID, nil
}

// verifyDurableUser handles tokens issued to already-created accounts.
func (s *authService) verifyDurableUser(ctx context.Context, token string) (string, error) {
	user, err := s.users.FindByVerificationToken(ctx, token, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.BadRequest("invalid or expired verification token")
	}
	if err != nil {
		return "", err
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return "", err
	}
	return user.ID, nil
}

// SkipVerification creates the account without verifying it.
func (s *authService) SkipVerification(ctx context.Context, tempID string) (string, error) {
	reg, err := s.pending.Get(ctx, tempID)
	if errors.Is(err, pending.ErrNotFound) {
		return "", apperror.BadRequest("invalid or expired registration")
	}
	if err != nil {
		return "", err
	}

	userID, err := s.promote(ctx, reg, false)
	if err != nil {
		return "", err
	}

	_ = s.pending.Delete(ctx, tempID)
	return userID, nil
}

// promote converts a transient registration into a durable user row.
func (s *authService) promote(ctx context.Context, reg pending.Registration, verified bool) (string, error) {
	exists, err := s.users.EmailExists(ctx, reg.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", apperror.Conflict("this email is already registered")
	}

	user := &model.User{
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
		MemberType:   reg.MemberType,
		Verified:     verified,
	}
	if reg.Name != "" {
		name := reg.Name
		user.Name = &name
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// SendVerification re-issues a verification token for an existing
// unverified account and "sends" it by logging.
func (s *authService) SendVerification(ctx context.Context, userID string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperror.NotFound("user not found")
	}
	if err != nil {
		return "", err
	}
	if user.Verified {
		return "", apperror.BadRequest("user is already verified")
	}

	token := uuid.NewString()
	if err := s.users.SetVerificationToken(ctx, userID, token, time.Now().Add(verificationTTL)); err != nil {
		return "", err
	}

	log.Printf("verification email sent to %s, token: %s", user.Email, token)
	return token, nil
}

func (s *authService) VerificationStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &dto.VerificationStatusResponse{Email: user.Email, Verified: user.Verified}, nil
}

// Login checks credentials and issues a token. Both an unknown email
// and a wrong password produce the same generic message.
func (s *authService) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, []string, error) {
	if errs := validation.ValidateLogin(in.Email, in.Password); len(errs) > 0 {
		return nil, errs, nil
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, invalidCredentials()
	}
	if err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, invalidCredentials()
	}

	token, err := middleware.GenerateToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResult{Token: token, UserData: toUserResponse(user)}, nil, nil
}

func invalidCredentials() error {
	return apperror.New(http.StatusUnauthorized, "invalid email or password", apperror.ErrUnauthorized)
}
