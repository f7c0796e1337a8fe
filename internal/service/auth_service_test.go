package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/project-dashboard/internal/config"
	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/events"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// ---- fakes ----

type fakeUserRepo struct {
	users  map[string]*domain.User // by id
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	copied.PasswordHash = ""
	return &copied, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			copied.PasswordHash = ""
			out = append(out, copied)
		}
	}
	return out, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:    "test-secret",
		TokenTTLDays: 7,
		BcryptCost:   bcrypt.MinCost,
	}
}

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de
}

// ---- tests ----

func TestSignupIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), repo, dispatcher)

	user, token, err := svc.Signup(context.Background(), "a@x.com", "secret1", "Alice", "")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Empty(t, user.PasswordHash)
	assert.Equal(t, domain.RoleEmployee, user.Role)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)

	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserRegistered, dispatcher.published[0].Type)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), nil)

	_, _, err := svc.Signup(context.Background(), "a@x.com", "secret1", "Alice", "superuser")
	de := domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo, nil)

	_, _, err := svc.Signup(context.Background(), "dup@x.com", "secret1", "Alice", "")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "dup@x.com", "secret2", "Bob", "")
	de := domainErr(t, err)
	assert.Equal(t, 409, de.HTTPStatus)
	assert.Equal(t, "User with this email already exists", de.Message)
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo, nil)

	created, signupToken, err := svc.Signup(context.Background(), "a@x.com", "secret1", "Alice", domain.RoleProjectManager)
	require.NoError(t, err)

	user, loginToken, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, loginToken)
	// A fresh login may mint a different token than signup did.
	_ = signupToken

	claims, err := svc.TokenManager().ParseToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo, nil)

	_, _, err := svc.Signup(context.Background(), "a@x.com", "secret1", "Alice", "")
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(context.Background(), "nobody@x.com", "secret1")
	_, _, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong")

	unknown := domainErr(t, unknownErr)
	wrong := domainErr(t, wrongErr)
	assert.Equal(t, 401, unknown.HTTPStatus)
	assert.Equal(t, 401, wrong.HTTPStatus)
	assert.Equal(t, unknown.Message, wrong.Message)
}
