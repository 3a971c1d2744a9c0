// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/contentai/internal/core"
	"github.com/angelamos/contentai/internal/mail"
)

type fakeUserStore struct {
	byEmail map[string]*UserInfo
	byID    map[uuid.UUID]*UserInfo
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*UserInfo),
		byID:    make(map[uuid.UUID]*UserInfo),
	}
}

func (s *fakeUserStore) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) GetByID(
	_ context.Context,
	id uuid.UUID,
) (*UserInfo, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) Create(
	_ context.Context,
	username, email, passwordHash string,
) (*UserInfo, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	for _, u := range s.byEmail {
		if u.Username == username {
			return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	u := &UserInfo{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.byEmail[email] = u
	s.byID[u.ID] = u
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(
	_ context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	u, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*PasswordResetToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*PasswordResetToken)}
}

func (s *fakeTokenStore) Create(
	_ context.Context,
	token *PasswordResetToken,
) error {
	copied := *token
	s.tokens[token.Token] = &copied
	return nil
}

func (s *fakeTokenStore) FindByToken(
	_ context.Context,
	token string,
) (*PasswordResetToken, error) {
	row, ok := s.tokens[token]
	if !ok {
		return nil, fmt.Errorf("find reset token: %w", core.ErrNotFound)
	}
	copied := *row
	return &copied, nil
}

func (s *fakeTokenStore) DeleteForUser(
	_ context.Context,
	userID uuid.UUID,
) error {
	for value, row := range s.tokens {
		if row.UserID == userID {
			delete(s.tokens, value)
		}
	}
	return nil
}

func (s *fakeTokenStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	for value, row := range s.tokens {
		if row.ID == id {
			delete(s.tokens, value)
		}
	}
	return nil
}

func (s *fakeTokenStore) DeleteExpired(
	_ context.Context,
	before time.Time,
) (int64, error) {
	var deleted int64
	for value, row := range s.tokens {
		if row.ExpiresAt.Before(before) {
			delete(s.tokens, value)
			deleted++
		}
	}
	return deleted, nil
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type serviceFixture struct {
	service *Service
	users   *fakeUserStore
	tokens  *fakeTokenStore
	mailer  *fakeMailer
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	mailer := &fakeMailer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewService(
		users,
		tokens,
		newTestJWTManager(t, time.Hour),
		nil,
		mailer,
		"http://localhost:5000",
		logger,
	)

	return &serviceFixture{
		service: service,
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
	}
}

func registerTestUser(t *testing.T, f *serviceFixture) *UserInfo {
	t.Helper()

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Username: "u1",
		Email:    "u1@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	return f.users.byEmail["u1@x.com"]
}

func TestRegisterAndLogin(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.Register(context.Background(), RegisterRequest{
		Username: "u1",
		Email:    "u1@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Username)
	assert.Equal(t, "u1@x.com", resp.Email)

	tokens, err := f.service.Login(context.Background(), LoginRequest{
		Email:    "u1@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	f := newServiceFixture(t)
	registerTestUser(t, f)

	_, err := f.service.Register(context.Background(), RegisterRequest{
		Username: "u1",
		Email:    "other@x.com",
		Password: "secret1",
	})
	require.Error(t, err)

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestLoginRejectsBadPasswordAndUnknownEmail(t *testing.T) {
	f := newServiceFixture(t)
	registerTestUser(t, f)

	// Both failure modes surface the identical error so responses do
	// not reveal which accounts exist.
	_, badPassword := f.service.Login(context.Background(), LoginRequest{
		Email:    "u1@x.com",
		Password: "wrong",
	})
	_, unknownEmail := f.service.Login(context.Background(), LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret1",
	})

	require.Error(t, badPassword)
	require.Error(t, unknownEmail)

	first, ok := core.AsAppError(badPassword)
	require.True(t, ok)
	second, ok := core.AsAppError(unknownEmail)
	require.True(t, ok)

	assert.Equal(t, 401, first.Status)
	assert.Equal(t, first.Message, second.Message)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.RequestPasswordReset(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, f.mailer.sent)
}

func TestRequestPasswordResetSendsMailWithToken(t *testing.T) {
	f := newServiceFixture(t)
	user := registerTestUser(t, f)

	err := f.service.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)

	require.Len(t, f.tokens.tokens, 1)
	require.Len(t, f.mailer.sent, 1)

	for value := range f.tokens.tokens {
		assert.Contains(t, f.mailer.sent[0].Body, value)
	}
	assert.Equal(t, user.Email, f.mailer.sent[0].To)
}

func TestRequestPasswordResetSupersedesOlderToken(t *testing.T) {
	f := newServiceFixture(t)
	user := registerTestUser(t, f)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), user.Email))

	var firstToken string
	for value := range f.tokens.tokens {
		firstToken = value
	}

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), user.Email))

	// Only the newest token survives.
	require.Len(t, f.tokens.tokens, 1)
	_, stillThere := f.tokens.tokens[firstToken]
	assert.False(t, stillThere)
}

func TestResetPasswordSingleUse(t *testing.T) {
	f := newServiceFixture(t)
	user := registerTestUser(t, f)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), user.Email))

	var tokenValue string
	for value := range f.tokens.tokens {
		tokenValue = value
	}

	err := f.service.ResetPassword(context.Background(), tokenValue, "newsecret")
	require.NoError(t, err)

	// The new password works, the old one does not.
	_, err = f.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "newsecret",
	})
	assert.NoError(t, err)

	_, err = f.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "secret1",
	})
	assert.Error(t, err)

	// Redeeming the same token again soft-fails.
	err = f.service.ResetPassword(context.Background(), tokenValue, "another")
	assert.ErrorIs(t, err, ErrResetInvalid)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newServiceFixture(t)
	user := registerTestUser(t, f)

	expired := &PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, f.tokens.Create(context.Background(), expired))

	err := f.service.ResetPassword(context.Background(), "expired-token", "newsecret")
	assert.ErrorIs(t, err, ErrResetInvalid)

	// Expired tokens are purged on the failed redeem.
	_, found := f.tokens.tokens["expired-token"]
	assert.False(t, found)

	// The failed redeem must not have touched the password: the old
	// one still works and the attempted one does not.
	_, err = f.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "secret1",
	})
	assert.NoError(t, err)

	_, err = f.service.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "newsecret",
	})
	assert.Error(t, err)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.ResetPassword(context.Background(), "no-such-token", "newsecret")
	assert.ErrorIs(t, err, ErrResetInvalid)
}
