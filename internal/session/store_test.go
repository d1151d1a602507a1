package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/flexirent/flexirent-client/internal/api"
	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
	"github.com/flexirent/flexirent-client/internal/state"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Load() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockPersister) Save(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockPersister) Clear() error {
	args := m.Called()
	return args.Error(0)
}

type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) SignIn(ctx context.Context, req api.SignInRequest) (*api.SignInResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SignInResponse), args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

// assertInvariant checks that the credential and the identity are either
// both present or both absent.
func assertInvariant(t *testing.T, s *Store) {
	t.Helper()
	_, hasToken := s.Token()
	_, hasUser := s.Identity()
	assert.Equal(t, hasToken, hasUser)
}

func TestStore_Login_Success(t *testing.T) {
	persist := &MockPersister{}
	auth := &MockAuthClient{}
	store := NewStore(persist, testLogger())
	store.BindAuth(auth)

	ctx := context.Background()
	auth.On("SignIn", ctx, api.SignInRequest{Username: "rita", Password: "pw"}).Return(&api.SignInResponse{
		Token:    "jwt-abc",
		ID:       42,
		Username: "rita",
		Email:    "rita@example.com",
		Role:     domain.RoleTenant,
	}, nil).Once()
	persist.On("Save", "jwt-abc").Return(nil).Once()

	sess, err := store.Login(ctx, "rita", "pw")

	assert.NoError(t, err)
	assert.Equal(t, "jwt-abc", sess.Token)
	assert.Equal(t, int64(42), sess.User.ID)
	assert.Equal(t, domain.RoleTenant, sess.User.Role)
	assert.Equal(t, state.StatusSuccess, store.Status())

	token, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, "jwt-abc", token)
	assertInvariant(t, store)

	persist.AssertExpectations(t)
	auth.AssertExpectations(t)
}

func TestStore_Login_RejectedMapsToInvalidCredentials(t *testing.T) {
	persist := &MockPersister{}
	auth := &MockAuthClient{}
	store := NewStore(persist, testLogger())
	store.BindAuth(auth)

	ctx := context.Background()
	auth.On("SignIn", ctx, mock.Anything).Return(nil, &gateway.Error{
		Kind:       gateway.KindUnauthorized,
		Message:    "Unauthorized",
		HTTPStatus: 401,
	}).Once()

	_, err := store.Login(ctx, "rita", "wrong")

	assert.Error(t, err)
	assert.Equal(t, gateway.KindInvalidCredentials, gateway.KindOf(err))
	assert.Contains(t, err.Error(), "invalid username or password")
	assert.Equal(t, state.StatusError, store.Status())

	_, ok := store.Token()
	assert.False(t, ok, "a failed login must not leave a credential behind")
	assertInvariant(t, store)
	persist.AssertNotCalled(t, "Save", mock.Anything)
}

func TestStore_Login_NetworkErrorPassesThrough(t *testing.T) {
	persist := &MockPersister{}
	auth := &MockAuthClient{}
	store := NewStore(persist, testLogger())
	store.BindAuth(auth)

	ctx := context.Background()
	auth.On("SignIn", ctx, mock.Anything).Return(nil, &gateway.Error{
		Kind:    gateway.KindNetwork,
		Message: "connection refused",
	}).Once()

	_, err := store.Login(ctx, "rita", "pw")

	assert.Equal(t, gateway.KindNetwork, gateway.KindOf(err), "only rejections remap, transport errors keep their kind")
}

func TestStore_Login_PersistFailure(t *testing.T) {
	persist := &MockPersister{}
	auth := &MockAuthClient{}
	store := NewStore(persist, testLogger())
	store.BindAuth(auth)

	ctx := context.Background()
	auth.On("SignIn", ctx, mock.Anything).Return(&api.SignInResponse{Token: "jwt-abc", Username: "rita", Role: domain.RoleTenant}, nil).Once()
	persist.On("Save", "jwt-abc").Return(errors.New("disk full")).Once()

	_, err := store.Login(ctx, "rita", "pw")

	assert.Error(t, err)
	_, ok := store.Token()
	assert.False(t, ok, "an unpersisted credential must not be kept in memory")
	assertInvariant(t, store)
}

func TestStore_Hydrate_NoCredential(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	persist.On("Load").Return("", nil).Once()

	assert.NoError(t, store.Hydrate())
	assert.Equal(t, state.StatusIdle, store.Status())
	assertInvariant(t, store)
}

func TestStore_Hydrate_RestoresIdentityFromClaims(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	token := signedToken(t, jwt.MapClaims{
		"sub":      "rita",
		"id":       float64(42),
		"username": "rita",
		"role":     "LANDLORD",
	})
	persist.On("Load").Return(token, nil).Once()

	assert.NoError(t, store.Hydrate())

	user, ok := store.Identity()
	assert.True(t, ok)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "rita", user.Username)
	assert.Equal(t, domain.RoleLandlord, user.Role)

	got, ok := store.Token()
	assert.True(t, ok)
	assert.Equal(t, token, got)
	assertInvariant(t, store)
}

func TestStore_Hydrate_SubjectFallback(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	token := signedToken(t, jwt.MapClaims{"sub": "omar", "role": "TENANT"})
	persist.On("Load").Return(token, nil).Once()

	assert.NoError(t, store.Hydrate())

	user, ok := store.Identity()
	assert.True(t, ok)
	assert.Equal(t, "omar", user.Username)
}

func TestStore_Hydrate_DiscardsUndecodableToken(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	persist.On("Load").Return("not-a-jwt", nil).Once()
	persist.On("Clear").Return(nil).Once()

	assert.NoError(t, store.Hydrate())

	_, ok := store.Token()
	assert.False(t, ok)
	assertInvariant(t, store)
	persist.AssertExpectations(t)
}

func TestStore_Hydrate_DiscardsTokenWithoutIdentity(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	token := signedToken(t, jwt.MapClaims{"foo": "bar"})
	persist.On("Load").Return(token, nil).Once()
	persist.On("Clear").Return(nil).Once()

	assert.NoError(t, store.Hydrate())

	_, ok := store.Identity()
	assert.False(t, ok)
	persist.AssertExpectations(t)
}

func TestStore_Logout_Idempotent(t *testing.T) {
	persist := &MockPersister{}
	auth := &MockAuthClient{}
	store := NewStore(persist, testLogger())
	store.BindAuth(auth)

	ctx := context.Background()
	auth.On("SignIn", ctx, mock.Anything).Return(&api.SignInResponse{Token: "jwt-abc", Username: "rita", Role: domain.RoleTenant}, nil).Once()
	persist.On("Save", "jwt-abc").Return(nil).Once()
	persist.On("Clear").Return(nil).Times(2)

	_, err := store.Login(ctx, "rita", "pw")
	assert.NoError(t, err)

	store.Logout()
	store.Logout()

	_, ok := store.Token()
	assert.False(t, ok)
	assert.Equal(t, state.StatusIdle, store.Status())
	assertInvariant(t, store)
	persist.AssertExpectations(t)
}

func TestStore_Logout_SurvivesClearFailure(t *testing.T) {
	persist := &MockPersister{}
	store := NewStore(persist, testLogger())

	persist.On("Clear").Return(errors.New("readonly fs")).Once()

	store.Logout()

	_, ok := store.Token()
	assert.False(t, ok, "in-memory state clears even when the file does not")
}
