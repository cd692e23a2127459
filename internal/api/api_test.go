package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"car_rental/internal/db"
	"car_rental/internal/store"
	"car_rental/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret     = "test-secret"
	testAdminEmail = "boss@fleet.io"
)

var testNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *store.Store
	mr     *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.Config(logger.Silent))
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(gdb))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	st := store.New(gdb)
	router := NewRouter(Deps{
		Store:           st,
		Sessions:        utils.NewSessionStore(rdb, time.Hour),
		Redis:           rdb,
		JWTSecret:       testSecret,
		AdminEmail:      testAdminEmail,
		Cookie:          SessionCookie{Name: "session_token"},
		ReviewsCacheTTL: time.Minute,
		Now:             func() time.Time { return testNow },
	})
	return &testServer{t: t, router: router, store: st, mr: mr}
}

// do sends body as JSON with an optional bearer token
func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signup registers and logs in, returning the bearer token
func (s *testServer) signup(email string) string {
	s.t.Helper()
	creds := map[string]string{"name": "Someone", "email": email, "password": "password123"}
	w := s.do(http.MethodPost, "/auth/register", "", creds)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/auth/login", "", creds)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var resp AuthResponse
	decode(s.t, w, &resp)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
