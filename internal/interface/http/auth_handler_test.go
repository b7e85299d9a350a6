package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/chefai/chefai/internal/application"
	"github.com/chefai/chefai/internal/domain/entity"
	"github.com/chefai/chefai/internal/domain/repository"
	"github.com/chefai/chefai/internal/infrastructure/jsonfile"
	"github.com/chefai/chefai/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errConn = errors.New("connection refused")

// downStore simulates an unreachable primary database.
type downStore struct{}

func (downStore) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, errConn
}
func (downStore) FindByID(context.Context, string) (*entity.User, error) { return nil, errConn }
func (downStore) Create(context.Context, *entity.User) error             { return errConn }

type fakeRecorder struct {
	count int
	err   error
}

func (f *fakeRecorder) Record(context.Context, *entity.Signup) error {
	if f.err != nil {
		return f.err
	}
	f.count++
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testApp struct {
	engine *gin.Engine
	jwt    *helpers.JWTManager
}

func newTestApp(t *testing.T, primary, fallback repository.CredentialStore, signups repository.SignupRecorder) *testApp {
	t.Helper()

	jwt := helpers.NewJWTManager("test-secret", 7*24*time.Hour)
	svc := application.NewAuthService(primary, fallback, signups, jwt, quietLogger())
	h := NewAuthHandler(svc, jwt, quietLogger(), "", false)

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/auth/validate", h.Validate)
	return &testApp{engine: r, jwt: jwt}
}

func fileStore(t *testing.T) *jsonfile.UserStore {
	t.Helper()
	return jsonfile.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
}

func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.engine.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func authCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == helpers.AuthCookie {
			return c
		}
	}
	t.Fatal("auth-token cookie not set")
	return nil
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	tests := []struct {
		name    string
		body    map[string]any
		wantMsg string
	}{
		{"missing name", map[string]any{"email": "a@b.co", "password": "secret1"}, "Name, email, and password are required"},
		{"missing email", map[string]any{"name": "Ana", "password": "secret1"}, "Name, email, and password are required"},
		{"missing password", map[string]any{"name": "Ana", "email": "a@b.co"}, "Name, email, and password are required"},
		{"bad email shape", map[string]any{"name": "Ana", "email": "not-an-email", "password": "secret1"}, "Please enter a valid email address"},
		{"short password", map[string]any{"name": "Ana", "email": "a@b.co", "password": "12345"}, "Password must be at least 6 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := app.do(t, http.MethodPost, "/api/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, tt.wantMsg, decode(t, rr)["error"])
		})
	}
}

func TestRegisterUsesFallbackWhenPrimaryDown(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	rr := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decode(t, rr)
	require.Equal(t, "Registration successful (using fallback storage)", body["message"])
	require.Equal(t, false, body["signupRecorded"])
	require.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ana@example.com", user["email"])
	require.Equal(t, "Ana", user["name"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "passwordHash")

	cookie := authCookie(t, rr)
	require.Equal(t, body["token"], cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.InDelta(t, 7*24*60*60, cookie.MaxAge, 5)
}

func TestRegisterPrimaryPathRecordsSignup(t *testing.T) {
	recorder := &fakeRecorder{}
	app := newTestApp(t, fileStore(t), fileStore(t), recorder)

	rr := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decode(t, rr)
	require.Equal(t, "Registration successful - Data stored in both main and signup databases", body["message"])
	require.Equal(t, true, body["signupRecorded"])
	require.Equal(t, 1, recorder.count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	first := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, first.Code)

	second := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Imposter", "email": "ANA@EXAMPLE.COM", "password": "secret2"})
	require.Equal(t, http.StatusConflict, second.Code)
	require.Equal(t, "An account with this email already exists", decode(t, second)["error"])
}

func TestLoginScenarios(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	reg := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Ana", "email": "Ana@Example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, reg.Code)
	regUser := decode(t, reg)["user"].(map[string]any)
	require.Equal(t, "ana@example.com", regUser["email"])

	t.Run("case-insensitive email", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/auth/login",
			map[string]any{"email": "ANA@EXAMPLE.COM", "password": "secret1"})
		require.Equal(t, http.StatusOK, rr.Code)

		body := decode(t, rr)
		require.Equal(t, "Login successful (using fallback storage)", body["message"])
		user := body["user"].(map[string]any)
		require.Equal(t, regUser["id"], user["id"])
		authCookie(t, rr)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/auth/login",
			map[string]any{"email": "ana@example.com", "password": "wrong1"})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid email or password", decode(t, rr)["error"])
	})

	t.Run("unknown email uses same message", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/auth/login",
			map[string]any{"email": "nobody@example.com", "password": "secret1"})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid email or password", decode(t, rr)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := app.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "ana@example.com"})
		require.Equal(t, http.StatusBadRequest, rr.Code)
		require.Equal(t, "Email and password are required", decode(t, rr)["error"])
	})
}

func TestLoginBothStoresDown(t *testing.T) {
	app := newTestApp(t, downStore{}, downStore{}, nil)

	rr := app.do(t, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "Database connection failed. Please try again later.", decode(t, rr)["error"])
}

func TestLogoutIdempotent(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	for i := 0; i < 2; i++ {
		rr := app.do(t, http.MethodPost, "/api/auth/logout", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "Logout successful", decode(t, rr)["message"])

		cookie := authCookie(t, rr)
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	}
}

func TestValidate(t *testing.T) {
	app := newTestApp(t, downStore{}, fileStore(t), nil)

	reg := app.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, reg.Code)
	valid := authCookie(t, reg)

	t.Run("no cookie", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "No token provided", decode(t, rr)["error"])
	})

	t.Run("tampered token", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil,
			&http.Cookie{Name: helpers.AuthCookie, Value: valid.Value + "x"})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid token", decode(t, rr)["error"])
	})

	t.Run("expired token", func(t *testing.T) {
		expired := helpers.NewJWTManager("test-secret", -time.Hour)
		token, _, err := expired.Generate("some-id", "ana@example.com")
		require.NoError(t, err)

		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil,
			&http.Cookie{Name: helpers.AuthCookie, Value: token})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		require.Equal(t, "Invalid token", decode(t, rr)["error"])
	})

	t.Run("valid token for unknown user", func(t *testing.T) {
		token, _, err := app.jwt.Generate("ghost-id", "ghost@example.com")
		require.NoError(t, err)

		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil,
			&http.Cookie{Name: helpers.AuthCookie, Value: token})
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "User not found", decode(t, rr)["error"])
	})

	t.Run("valid token", func(t *testing.T) {
		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil,
			&http.Cookie{Name: helpers.AuthCookie, Value: valid.Value})
		require.Equal(t, http.StatusOK, rr.Code)

		body := decode(t, rr)
		require.Equal(t, true, body["valid"])
		user := body["user"].(map[string]any)
		require.Equal(t, "ana@example.com", user["email"])
		require.NotContains(t, user, "password")
		require.NotContains(t, user, "passwordHash")
	})

	t.Run("after logout the cleared cookie is rejected", func(t *testing.T) {
		out := app.do(t, http.MethodPost, "/api/auth/logout", nil)
		cleared := authCookie(t, out)
		require.Empty(t, cleared.Value)

		rr := app.do(t, http.MethodGet, "/api/auth/validate", nil,
			&http.Cookie{Name: helpers.AuthCookie, Value: cleared.Value})
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
