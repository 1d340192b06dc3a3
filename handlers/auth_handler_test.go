package handlers

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/daran6255/msme/models"
)

const testJWTSecret = "test-secret"

func newAuthServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := newTestDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if err := db.Create(&models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	e := echo.New()
	e.POST("/admin/login", NewAuthHandler(db, testJWTSecret).AdminLogin)
	return e
}

func TestAdminLoginIssuesToken(t *testing.T) {
	e := newAuthServer(t)

	rec := doJSON(t, e, "POST", "/admin/login", map[string]string{
		"username": "admin",
		"password": "letmein",
	})
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	decodeBody(t, rec, &resp)
	if resp.Role != "admin" {
		t.Errorf("expected role admin, got %q", resp.Role)
	}

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		t.Errorf("unexpected claims: %v", token.Claims)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	e := newAuthServer(t)

	rec := doJSON(t, e, "POST", "/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if rec.Code != 401 {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = doJSON(t, e, "POST", "/admin/login", map[string]string{
		"username": "ghost",
		"password": "letmein",
	})
	if rec.Code != 401 {
		t.Fatalf("expected 401 for unknown user, got %d", rec.Code)
	}
}
