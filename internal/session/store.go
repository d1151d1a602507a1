// Package session owns the current credential and identity. It is the
// single writer of the persisted credential and the single source of
// truth the view layer reads role gates from.
package session

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/flexirent/flexirent-client/internal/api"
	"github.com/flexirent/flexirent-client/internal/domain"
	"github.com/flexirent/flexirent-client/internal/gateway"
	"github.com/flexirent/flexirent-client/internal/state"
)

// Persister stores the credential across restarts.
type Persister interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthClient is the slice of the auth resource client the store needs.
type AuthClient interface {
	SignIn(ctx context.Context, req api.SignInRequest) (*api.SignInResponse, error)
}

// Store holds the session slice. The credential and identity are always
// set or cleared together; no reachable state has one without the other.
type Store struct {
	slice   *state.Slice[domain.Session]
	persist Persister
	auth    AuthClient
	log     *logrus.Logger
}

func NewStore(persist Persister, log *logrus.Logger) *Store {
	return &Store{
		slice:   state.NewSlice[domain.Session](),
		persist: persist,
		log:     log,
	}
}

// BindAuth attaches the auth resource client. The client is built on the
// gateway, which reads its credential from this store, so it cannot exist
// before the store does; callers bind it right after constructing the
// gateway.
func (s *Store) BindAuth(auth AuthClient) {
	s.auth = auth
}

// Hydrate restores a persisted credential at process start. The identity
// is rebuilt from the token's claims without verifying the signature:
// validity is discovered lazily on the first request the remote rejects.
// An absent credential is not an error; an undecodable one is discarded.
func (s *Store) Hydrate() error {
	token, err := s.persist.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	user, err := identityFromToken(token)
	if err != nil {
		s.log.WithError(err).Warn("discarding persisted credential with undecodable claims")
		return s.persist.Clear()
	}

	s.slice.Succeed(domain.Session{Token: token, User: user})
	s.log.WithFields(logrus.Fields{"username": user.Username, "role": user.Role}).Debug("session hydrated")
	return nil
}

// Login authenticates against the remote. On success the credential and
// identity are stored atomically and the credential is persisted; on
// failure the stored state is left untouched and the error carries
// INVALID_CREDENTIALS for rejected logins.
func (s *Store) Login(ctx context.Context, username, password string) (domain.Session, error) {
	s.slice.Start()

	resp, err := s.auth.SignIn(ctx, api.SignInRequest{Username: username, Password: password})
	if err != nil {
		err = asLoginError(err)
		s.slice.Fail(err.Error())
		return domain.Session{}, err
	}

	sess := domain.Session{
		Token: resp.Token,
		User: &domain.User{
			ID:        resp.ID,
			Username:  resp.Username,
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
			Role:      resp.Role,
		},
	}

	if err := s.persist.Save(resp.Token); err != nil {
		s.slice.Fail(err.Error())
		return domain.Session{}, fmt.Errorf("persist credential: %w", err)
	}

	s.slice.Succeed(sess)
	s.log.WithFields(logrus.Fields{"username": sess.User.Username, "role": sess.User.Role}).Info("logged in")
	return sess, nil
}

// Logout clears the credential and identity from memory and from the
// persisted store. It always succeeds and is idempotent, which makes the
// gateway's 401 teardown safe under concurrent failing requests.
func (s *Store) Logout() {
	s.slice.Reset()
	if err := s.persist.Clear(); err != nil {
		s.log.WithError(err).Warn("clearing persisted credential failed")
	}
}

// Token implements the gateway's credential source.
func (s *Store) Token() (string, bool) {
	sess := s.slice.Data()
	return sess.Token, sess.Token != ""
}

// Identity returns the current identity, or false when logged out.
func (s *Store) Identity() (*domain.User, bool) {
	sess := s.slice.Data()
	return sess.User, sess.User != nil
}

func (s *Store) Session() domain.Session {
	return s.slice.Data()
}

func (s *Store) Status() state.Status {
	return s.slice.Status()
}

func (s *Store) Err() string {
	return s.slice.Err()
}

// asLoginError remaps remote rejections of a login attempt. The remote
// answers 401 for bad credentials, which everywhere else means an expired
// session; here it means the credentials themselves were wrong.
func asLoginError(err error) error {
	gerr, ok := err.(*gateway.Error)
	if !ok {
		return err
	}
	switch gerr.Kind {
	case gateway.KindUnauthorized, gateway.KindValidation:
		return &gateway.Error{Kind: gateway.KindInvalidCredentials, Message: "invalid username or password", HTTPStatus: gerr.HTTPStatus}
	}
	return err
}

// identityFromToken decodes the unverified claims of a stored JWT. The
// client holds no signing secret; the server remains the authority and
// will reject a forged or expired token with a 401 on first use.
func identityFromToken(token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	user := &domain.User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.Username = sub
	}
	if id, ok := claims["id"].(float64); ok {
		user.ID = int64(id)
	}
	if username, ok := claims["username"].(string); ok {
		user.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		user.Role = domain.Role(role)
	}
	if user.Username == "" || user.Role == "" {
		return nil, fmt.Errorf("token claims carry no identity")
	}
	return user, nil
}
