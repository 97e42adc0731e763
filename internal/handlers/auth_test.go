package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSignupLoginLogout(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	signup := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"jane@test","password":"longenough","firstName":"Jane"}`))
	w := httptest.NewRecorder()
	h.Signup(w, signup)
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if cookie := w.Header().Get("Set-Cookie"); !strings.Contains(cookie, "session=") {
		t.Fatalf("signup did not set session cookie: %s", cookie)
	}

	// Duplicate email rejected.
	dup := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"jane@test","password":"longenough"}`))
	w2 := httptest.NewRecorder()
	h.Signup(w2, dup)
	if w2.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w2.Code)
	}

	login := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"jane@test","password":"longenough"}`))
	w3 := httptest.NewRecorder()
	h.Login(w3, login)
	if w3.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", w3.Code)
	}

	bad := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"jane@test","password":"wrong"}`))
	w4 := httptest.NewRecorder()
	h.Login(w4, bad)
	if w4.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401 got %d", w4.Code)
	}

	logout := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w5 := httptest.NewRecorder()
	h.Logout(w5, logout)
	if w5.Code != http.StatusOK {
		t.Fatalf("logout: expected 200 got %d", w5.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"","password":"short"}`))
	w := httptest.NewRecorder()
	h.Signup(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}
}
