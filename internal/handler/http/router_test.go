package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/subhaneetshrestha/lereddit/internal/config"
	domainErrors "github.com/subhaneetshrestha/lereddit/internal/domain/errors"
	"github.com/subhaneetshrestha/lereddit/internal/domain/models"
	graphqlhandler "github.com/subhaneetshrestha/lereddit/internal/handler/graphql"
	"github.com/subhaneetshrestha/lereddit/internal/infrastructure/security"
	"github.com/subhaneetshrestha/lereddit/internal/service"
)

type fakeUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*models.User{}}
}

func (r *fakeUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domainErrors.ErrUsernameExists
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainErrors.ErrEmailExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[username]; ok && user.IsActive {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.IsActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*models.Session{}}
}

func (s *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		return session, nil
	}
	return nil, domainErrors.ErrSessionNotFound
}

func (s *fakeSessionStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type fakePostRepository struct{}

func (fakePostRepository) Create(context.Context, *models.Post) error { return nil }
func (fakePostRepository) FindByID(context.Context, int64) (*models.Post, error) {
	return nil, domainErrors.ErrPostNotFound
}
func (fakePostRepository) List(context.Context) ([]*models.Post, error) { return nil, nil }
func (fakePostRepository) UpdateTitle(context.Context, int64, string) (*models.Post, error) {
	return nil, domainErrors.ErrPostNotFound
}
func (fakePostRepository) Delete(context.Context, int64) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher, err := security.NewArgon2idHasher(security.Argon2idParams{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	authService := service.NewAuthService(newFakeUserRepository(), newFakeSessionStore(), hasher, logger)
	postService := service.NewPostService(fakePostRepository{}, logger)

	schema, err := graphqlhandler.NewSchema(authService, postService)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Session: config.SessionConfig{
			CookieName: "qid",
			TTL:        87600 * time.Hour,
		},
	}
	return SetupRouter(schema, cfg, logger)
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, router *gin.Engine, query string, cookies []*http.Cookie) (*httptest.ResponseRecorder, graphQLResponse) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response graphQLResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return recorder, response
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "qid" {
			return cookie
		}
	}
	t.Fatal("no qid cookie in response")
	return nil
}

const registerAlice = `mutation {
	register(options: {username: "alice123", email: "a@b.com", password: "password1"}) {
		errors { field message }
		user { id username }
	}
}`

func TestRouter_RegisterSetsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	recorder, response := postGraphQL(t, router, registerAlice, nil)
	require.Empty(t, response.Errors)

	cookie := sessionCookie(t, recorder)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure, "Secure only outside of production when configured so")
}

func TestRouter_SessionCookieFlow(t *testing.T) {
	router := newTestRouter(t)

	// Unauthenticated: me is null.
	_, response := postGraphQL(t, router, `{ me { username } }`, nil)
	require.Empty(t, response.Errors)
	assert.Equal(t, "null", string(response.Data["me"]))

	// Register issues the cookie.
	recorder, response := postGraphQL(t, router, registerAlice, nil)
	require.Empty(t, response.Errors)
	cookie := sessionCookie(t, recorder)

	// With the cookie, me resolves to the registered user.
	_, response = postGraphQL(t, router, `{ me { username email } }`, []*http.Cookie{cookie})
	require.Empty(t, response.Errors)
	var me struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(response.Data["me"], &me))
	assert.Equal(t, "alice123", me.Username)
	assert.Equal(t, "a@b.com", me.Email)

	// Logout destroys the session and expires the cookie.
	recorder, response = postGraphQL(t, router, `mutation { logout }`, []*http.Cookie{cookie})
	require.Empty(t, response.Errors)
	assert.Equal(t, "true", string(response.Data["logout"]))
	cleared := sessionCookie(t, recorder)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)

	// The old session id no longer authenticates.
	_, response = postGraphQL(t, router, `{ me { username } }`, []*http.Cookie{cookie})
	require.Empty(t, response.Errors)
	assert.Equal(t, "null", string(response.Data["me"]))
}

func TestRouter_LoginIssuesFreshSession(t *testing.T) {
	router := newTestRouter(t)

	recorder, response := postGraphQL(t, router, registerAlice, nil)
	require.Empty(t, response.Errors)
	registered := sessionCookie(t, recorder)

	recorder, response = postGraphQL(t, router,
		`mutation { login(uniqueCred: "a@b.com", password: "password1") { user { username } } }`, nil)
	require.Empty(t, response.Errors)
	loggedIn := sessionCookie(t, recorder)

	assert.NotEmpty(t, loggedIn.Value)
	assert.NotEqual(t, registered.Value, loggedIn.Value)

	_, response = postGraphQL(t, router, `{ me { username } }`, []*http.Cookie{loggedIn})
	require.Empty(t, response.Errors)
	assert.Contains(t, string(response.Data["me"]), "alice123")
}

func TestRouter_FailedRegisterSetsNoCookie(t *testing.T) {
	router := newTestRouter(t)

	recorder, response := postGraphQL(t, router,
		`mutation { register(options: {username: "abc", email: "a@b.com", password: "password1"}) { errors { field } } }`, nil)
	require.Empty(t, response.Errors)

	for _, cookie := range recorder.Result().Cookies() {
		assert.NotEqual(t, "qid", cookie.Name)
	}
}

func TestRouter_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ok")
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
