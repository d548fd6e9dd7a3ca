package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arunvijay5372/KVM-Invoicing-System/internal/models"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func authRouter(db *gorm.DB) chi.Router {
	r := chi.NewRouter()
	NewAuthHandler(db).Routes(r)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := authRouter(db)

	body := `{"username":"arun","email":"arun@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret123") {
		t.Fatal("password leaked in response")
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"arun","password":"secret123"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d body=%s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value == "" {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
}

func TestRegisterValidatesAndConflicts(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := authRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"arun"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	body := `{"username":"arun","email":"arun@example.com","password":"secret123"}`
	req = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsBadCredentialsAndInactive(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := authRouter(db)

	body := `{"username":"arun","email":"arun@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"arun","password":"wrong"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"nobody","password":"secret123"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}

	if err := db.Model(&models.User{}).Where("username = ?", "arun").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"arun","password":"secret123"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	db := setupHandlerTestDB(t)
	r := authRouter(db)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", cookies)
	}
}
