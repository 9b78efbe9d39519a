package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"spotbook/dto"
	apperrors "spotbook/errors"
	"spotbook/models"
	"spotbook/services/logger"
	"spotbook/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

const msgUserExists = "User already exists"

// GoogleVerifier validates a Google ID token for audience and returns its
// claims.
type GoogleVerifier func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type AuthService struct {
	store          store.Store
	tokens         TokenStore
	logger         logger.Logger
	secret         []byte
	tokenTTL       time.Duration
	googleClientID string
	verifyGoogle   GoogleVerifier
	now            Clock
}

type AuthServiceOptions struct {
	Store          store.Store
	Tokens         TokenStore
	Logger         logger.Logger
	Secret         string
	TokenTTL       time.Duration
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
	Now            Clock
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	verify := opts.VerifyGoogle
	if verify == nil {
		verify = idtoken.Validate
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &AuthService{
		store:          opts.Store,
		tokens:         tokens,
		logger:         defaultLogger(opts.Logger),
		secret:         []byte(opts.Secret),
		tokenTTL:       opts.TokenTTL,
		googleClientID: opts.GoogleClientID,
		verifyGoogle:   verify,
		now:            defaultClock(opts.Now),
	}
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	info := UserInfo{UserID: user.ID, Email: user.Email, Username: user.Username}
	return GenerateToken(s.secret, info, s.tokenTTL, s.now())
}

func isEmail(value string) bool {
	_, err := mail.ParseAddress(value)
	return err == nil
}

// Signup creates an account and signs it in.
func (s *AuthService) Signup(ctx context.Context, in dto.SignupInput) (*models.User, string, error) {
	if isEmail(in.Username) {
		return nil, "", badRequest(map[string]string{"username": "Username cannot be an email."})
	}
	fields := map[string]string{}
	if u, err := optional(s.store.FindUserByCredential(ctx, in.Email)); err != nil {
		return nil, "", fail(s.logger, "find user", err)
	} else if u != nil {
		fields["email"] = "User with that email already exists"
	}
	if u, err := optional(s.store.FindUserByCredential(ctx, in.Username)); err != nil {
		return nil, "", fail(s.logger, "find user", err)
	} else if u != nil {
		fields["username"] = "User with that username already exists"
	}
	if len(fields) > 0 {
		return nil, "", apperrors.NewFieldError(apperrors.ErrCodeUserExists, msgUserExists, fields)
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", fail(s.logger, "hash password", err)
	}
	user := &models.User{
		Email:          in.Email,
		Username:       in.Username,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		HashedPassword: hashed,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperrors.NewAppError(apperrors.ErrCodeUserExists, msgUserExists, err)
		}
		return nil, "", fail(s.logger, "create user", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", fail(s.logger, "sign token", err)
	}
	s.logger.Info("user %d signed up", user.ID)
	return user, token, nil
}

// Login checks credential (email or username) and password.
func (s *AuthService) Login(ctx context.Context, credential, password string) (*models.User, string, error) {
	user, err := optional(s.store.FindUserByCredential(ctx, credential))
	if err != nil {
		return nil, "", fail(s.logger, "find user", err)
	}
	if user == nil || user.HashedPassword == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	token, err := s.issue(user)
	if err != nil {
		return nil, "", fail(s.logger, "sign token", err)
	}
	return user, token, nil
}

// GoogleLogin signs in with a Google ID token, creating the account on first
// use. Accounts created this way have no password.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	payload, err := s.verifyGoogle(ctx, idToken, s.googleClientID)
	if err != nil {
		return nil, "", apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid Google token", err)
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, "", apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Google account has no email", nil)
	}

	user, err := optional(s.store.FindUserByCredential(ctx, email))
	if err != nil {
		return nil, "", fail(s.logger, "find user", err)
	}
	if user == nil {
		given, _ := payload.Claims["given_name"].(string)
		family, _ := payload.Claims["family_name"].(string)
		local := strings.SplitN(email, "@", 2)[0]
		user = &models.User{
			Email:     email,
			Username:  local + "-" + uuid.NewString()[:8],
			FirstName: given,
			LastName:  family,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, "", fail(s.logger, "create google user", err)
		}
		s.logger.Info("user %d created from google sign-in", user.ID)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", fail(s.logger, "sign token", err)
	}
	return user, token, nil
}

// Authenticate resolves a session token to its claims. Revoked and expired
// tokens are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokens.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, fail(s.logger, "check token revocation", err)
	}
	if revoked {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token has been revoked", nil)
	}
	return claims, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, claims.Id, claims.ExpiresIn(s.now())); err != nil {
		return fail(s.logger, "revoke token", err)
	}
	return nil
}

// CurrentUser loads the signed-in user, or nil if the account is gone.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := optional(s.store.FindUser(ctx, userID))
	if err != nil {
		return nil, fail(s.logger, "find user", err)
	}
	return user, nil
}
