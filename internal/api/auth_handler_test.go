package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/service"
)

type stubAuthService struct {
	registerResult *domain.User
	registerErr    error
	loginToken     string
	loginResult    *domain.User
	loginErr       error
}

func (s *stubAuthService) Register(_ context.Context, _, _ string) (*domain.User, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.loginToken, s.loginResult, s.loginErr
}

func (s *stubAuthService) GetJWTSecret() string { return testSecret }

func newAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(svc)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	return router
}

func TestRegisterShortPasswordIs400(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	body := `{"email":"sam@clinic.test","password":"short"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRegisterDuplicateEmailIs409(t *testing.T) {
	router := newAuthRouter(&stubAuthService{registerErr: service.ErrUserAlreadyExists})

	body := `{"email":"sam@clinic.test","password":"longenough"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestRegisterNeverEchoesPassword(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		registerResult: &domain.User{ID: 1, Email: "sam@clinic.test", PasswordHash: "$2a$10$secret"},
	})

	body := `{"email":"sam@clinic.test","password":"longenough"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Errorf("password hash leaked: %s", w.Body.String())
	}
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	router := newAuthRouter(&stubAuthService{loginErr: service.ErrAuthenticationFailed})

	body := `{"email":"sam@clinic.test","password":"wrong-password"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		loginToken:  "a.b.c",
		loginResult: &domain.User{ID: 7, Email: "sam@clinic.test"},
	})

	body := `{"email":"sam@clinic.test","password":"longenough"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token != "a.b.c" || resp.User == nil || resp.User.ID != 7 {
		t.Errorf("response = %s", w.Body.String())
	}
}
