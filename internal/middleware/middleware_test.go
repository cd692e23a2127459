package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"car_rental/internal/domain"
	"car_rental/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testCookie = "session_token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	mr       *miniredis.Miniredis
	sessions *utils.SessionStore
	router   *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := utils.NewSessionStore(rdb, time.Hour)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	auth := SessionAuthMiddleware(testSecret, testCookie, sessions)
	r.GET("/me", auth, func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": identity.Email, "session": c.GetString(ContextSessionKey)})
	})
	r.GET("/admin", auth, AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/bare-admin", AdminOnlyMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return &fixture{mr: mr, sessions: sessions, router: r}
}

func (f *fixture) login(t *testing.T, role string) (string, utils.Session) {
	t.Helper()
	sess, err := f.sessions.Create(context.Background(), domain.User{ID: 1, Email: role + "@fleet.io", Role: role})
	require.NoError(t, err)
	token, err := utils.GenerateJWT(sess, testSecret, time.Hour)
	require.NoError(t, err)
	return token, sess
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_NoToken(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
}

func TestSessionAuth_BearerAndCookie(t *testing.T) {
	f := newFixture(t)
	token, sess := f.login(t, domain.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"user@fleet.io","session":"`+sess.ID+`"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	w = f.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_RejectsEndedSession(t *testing.T) {
	f := newFixture(t)
	token, sess := f.login(t, domain.RoleUser)
	require.NoError(t, f.sessions.Delete(context.Background(), sess.ID))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired session"}`, w.Body.String())
}

func TestSessionAuth_RejectsForgedToken(t *testing.T) {
	f := newFixture(t)
	_, sess := f.login(t, domain.RoleAdmin)
	forged, err := utils.GenerateJWT(sess, "not-the-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := f.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_StoreFailure(t *testing.T) {
	f := newFixture(t)
	token, _ := f.login(t, domain.RoleUser)
	f.mr.Close()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := f.do(req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Operation failed"}`, w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	f := newFixture(t)
	userToken, _ := f.login(t, domain.RoleUser)
	adminToken, _ := f.login(t, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := f.do(req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = f.do(req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(httptest.NewRequest(http.MethodGet, "/bare-admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_ReusesClientHeader(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := f.do(req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
