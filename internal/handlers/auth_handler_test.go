package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/middleware"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/pagination"
	"github.com/GiaHeplBro/SEO/internal/services"
	"github.com/GiaHeplBro/SEO/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(username, password, fullName, email string) (*models.User, error)
	getUserByUsernameFn     func(username string) (*models.User, error)
	getUserByIDFn           func(id uint) (*models.User, error)
	attemptLoginFn          func(username, password string) (*models.User, error)
	getOrCreateGoogleUserFn func(email, fullName, avatar string) (*models.User, error)
}

func (m *mockUserService) CreateUser(username, password, fullName, email string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, password, fullName, email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(username)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) AttemptLogin(username, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetOrCreateGoogleUser(email, fullName, avatar string) (*models.User, error) {
	if m.getOrCreateGoogleUserFn != nil {
		return m.getOrCreateGoogleUserFn(email, fullName, avatar)
	}
	return &models.User{}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockAuditService struct {
	logFn func(entry services.AuditEntry)
}

func (m *mockAuditService) Log(entry services.AuditEntry) {
	if m.logFn != nil {
		m.logFn(entry)
	}
}

func (m *mockAuditService) List(_ services.AuditLogFilter, page pagination.PageRequest) (*pagination.PageResponse[services.AuditLogView], error) {
	resp := pagination.NewPageResponse([]services.AuditLogView{}, page, 0)
	return &resp, nil
}

func (m *mockAuditService) Flush() {}
func (m *mockAuditService) Close() {}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/google", handler.GoogleLogin)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/auth/me", injectUserID(1), handler.Me)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 with token pair", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(username, _, fullName, email string) (*models.User, error) {
				return &models.User{
					Base:     models.Base{ID: 1},
					Username: username,
					FullName: fullName,
					Email:    email,
					Role:     "user",
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"sjohnson","password":"password123","fullName":"Sarah Johnson","email":"sarah@example.com"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["accessToken"] == nil || result["accessToken"] == "" {
			t.Error("expected non-empty accessToken")
		}
		if result["refreshToken"] == nil || result["refreshToken"] == "" {
			t.Error("expected non-empty refreshToken")
		}
		user := result["user"].(map[string]interface{})
		if user["username"] != "sjohnson" {
			t.Errorf("expected username sjohnson, got %v", user["username"])
		}
	})

	t.Run("returns 400 on missing username", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"username":"sjohnson","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate username", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUsername
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register", `{"username":"sjohnson","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USERNAME")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token pair", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(username, _ string) (*models.User, error) {
				return &models.User{Base: models.Base{ID: 1}, Username: username, Role: "user"}, nil
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"sjohnson","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["accessToken"] == nil || result["accessToken"] == "" {
			t.Error("expected non-empty accessToken")
		}
		if result["refreshToken"] == nil || result["refreshToken"] == "" {
			t.Error("expected non-empty refreshToken")
		}
	})

	t.Run("returns 401 on invalid credentials", func(t *testing.T) {
		userSvc := &mockUserService{
			attemptLoginFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"sjohnson","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GoogleLogin(t *testing.T) {
	t.Run("returns 400 when not configured", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/google", `{"credential":"some-token"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOOGLE_NOT_CONFIGURED")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("returns 200 with new token pair", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 7}, Username: "sjohnson", Role: "user"}
		refreshToken, err := middleware.GenerateRefreshToken(user)
		if err != nil {
			t.Fatalf("failed to generate refresh token: %v", err)
		}

		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				if id != 7 {
					t.Errorf("expected user ID 7, got %d", id)
				}
				return user, nil
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refreshToken":"`+refreshToken+`"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["accessToken"] == nil || result["accessToken"] == "" {
			t.Error("expected non-empty accessToken")
		}
	})

	t.Run("returns 401 on garbage token", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refreshToken":"not-a-jwt"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("rejects access token used as refresh token", func(t *testing.T) {
		user := &models.User{Base: models.Base{ID: 7}, Username: "sjohnson"}
		accessToken, err := middleware.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("failed to generate access token: %v", err)
		}

		handler := NewAuthHandler(&mockUserService{}, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/refresh", `{"refreshToken":"`+accessToken+`"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Run("returns 200 with profile", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return &models.User{
					Base:     models.Base{ID: id},
					Username: "sjohnson",
					FullName: "Sarah Johnson",
					Role:     "admin",
				}, nil
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["username"] != "sjohnson" {
			t.Errorf("expected sjohnson, got %v", result["username"])
		}
		if result["fullName"] != "Sarah Johnson" {
			t.Errorf("expected Sarah Johnson, got %v", result["fullName"])
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, nil)
		r := gin.New()
		r.GET("/auth/me", handler.Me)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when user missing", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(_ uint) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc, nil)
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/auth/me", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
