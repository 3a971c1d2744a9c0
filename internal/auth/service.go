// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/mail"
	"github.com/angelamos/contentai/internal/middleware"
)

const (
	resetTokenTTL   = time.Hour
	resetTokenBytes = 20

	blacklistPrefix = "blacklist:"
)

// ErrResetInvalid marks a redeem attempt against a token that is
// unknown, expired, or already spent. Handlers soft-fail it so the
// response does not reveal which of the three it was.
var ErrResetInvalid = errors.New("invalid or expired reset token")

// UserInfo is the slice of the user record auth needs. The user
// package implements UserProvider; keeping the interface here avoids
// an import cycle between the two features.
type UserInfo struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserInfo, error)
	Create(ctx context.Context, username, email, passwordHash string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type Service struct {
	users   UserProvider
	tokens  ResetTokenRepository
	jwt     *JWTManager
	redis   *redis.Client
	mailer  mail.Mailer
	baseURL string
	logger  *slog.Logger
}

func NewService(
	users UserProvider,
	tokens ResetTokenRepository,
	jwtManager *JWTManager,
	redisClient *redis.Client,
	mailer mail.Mailer,
	baseURL string,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		jwt:     jwtManager,
		redis:   redisClient,
		mailer:  mailer,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*RegisterResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.NewAppError(
				err,
				"user with that username or email already exists",
				http.StatusConflict,
				"conflict",
			)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	return &RegisterResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*TokenResponse, error) {
	var storedHash *string

	user, err := s.users.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		storedHash = &user.PasswordHash
	case errors.Is(err, core.ErrNotFound):
		// storedHash stays nil; verification still burns a full
		// argon2 round so unknown emails cost the same as bad
		// passwords.
	default:
		return nil, fmt.Errorf("login: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, storedHash)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !valid || user == nil {
		return nil, invalidCredentialsError()
	}

	accessToken, err := s.jwt.CreateAccessToken(user.ID.String(), user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	expire := s.jwt.AccessTokenExpire()

	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expire.Seconds()),
		ExpiresAt:   time.Now().Add(expire),
	}, nil
}

func invalidCredentialsError() error {
	return core.NewAppError(
		core.ErrUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
		"unauthorized",
	)
}

// Logout blacklists the token's jti until its natural expiry, so the
// stateless access token stops working immediately.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if s.redis == nil || claims.JTI == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	key := blacklistPrefix + claims.JTI
	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("logout: blacklist token: %w", err)
	}

	return nil
}

func (s *Service) IsTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	if s.redis == nil || jti == "" {
		return false, nil
	}

	n, err := s.redis.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}

	return n > 0, nil
}

// RunTokenCleanup purges expired reset tokens on an interval until
// the context is cancelled. Redeem already rejects expired tokens;
// this just keeps dead rows from accumulating.
func (s *Service) RunTokenCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := s.tokens.DeleteExpired(ctx, time.Now())
			if err != nil {
				s.logger.Warn("reset token cleanup failed",
					slog.String("error", err.Error()),
				)
				continue
			}
			if deleted > 0 {
				s.logger.Debug("expired reset tokens purged",
					slog.Int64("deleted", deleted),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

// RequestPasswordReset mints a fresh single-use token for the account
// and emails it. Any earlier tokens for the same user are purged
// first, so only the newest link works.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	if err := s.tokens.DeleteForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	tokenValue, err := core.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	now := time.Now()
	token := &PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     tokenValue,
		ExpiresAt: now.Add(resetTokenTTL),
		CreatedAt: now,
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.baseURL, tokenValue)
	msg := mail.Message{
		To:      user.Email,
		Subject: "Password Reset Request",
		Body: fmt.Sprintf(
			"To reset your password, visit the following link:\n\n%s\n\n"+
				"The link expires in one hour. If you did not request a "+
				"password reset, you can ignore this email.",
			resetURL,
		),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		return core.UpstreamError("failed to send password reset email", err)
	}

	s.logger.Info("password reset token issued",
		slog.String("user_id", user.ID.String()),
	)

	return nil
}

// ResetPassword redeems a token exactly once. Unknown, expired, and
// spent tokens all collapse into ErrResetInvalid.
func (s *Service) ResetPassword(
	ctx context.Context,
	tokenValue string,
	newPassword string,
) error {
	token, err := s.tokens.FindByToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrResetInvalid
		}
		return fmt.Errorf("reset password: %w", err)
	}

	if token.IsExpired() {
		if delErr := s.tokens.DeleteByID(ctx, token.ID); delErr != nil {
			s.logger.Warn("failed to delete expired reset token",
				slog.String("error", delErr.Error()),
			)
		}
		return ErrResetInvalid
	}

	passwordHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.tokens.DeleteByID(ctx, token.ID); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.Info("password reset completed",
		slog.String("user_id", token.UserID.String()),
	)

	return nil
}
