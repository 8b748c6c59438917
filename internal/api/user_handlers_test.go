package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"examprep/internal/config"
	"examprep/internal/db"
	"examprep/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setupRedis() *redis.Client {
	// Use redis.NewClient with a dummy config, but do NOT rely on real Redis for handler tests.
	return redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
}

func TestLoginHandler_NeedSetup(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	rdb := setupRedis()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginHandler(cfg, rdb))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte(`{"username":"a","password":"b"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden for initial setup required, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "need_setup") {
		t.Errorf("expected need_setup flag, got: %s", w.Body.String())
	}
}

func TestLoginHandler_InvalidUser(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	seedUser(t, "someone", "user")
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	rdb := setupRedis()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginHandler(cfg, rdb))
	payload := map[string]string{"username": "nobody", "password": "wrongpw"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized for bad user, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginHandler_InvalidPassword(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "loginuser2", "user")
	cfg := &config.Config{}
	cfg.Server.JWTSecret = "secret"
	rdb := setupRedis()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginHandler(cfg, rdb))
	payload := map[string]string{"username": u.Username, "password": "wrongpw"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized for bad password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	pw := "mypw"
	hash, _ := user.HashPassword(pw)
	u := user.User{Username: "gooduser", PasswordHash: hash, Role: user.RoleUser, ExamLevel: "igcse", CreatedAt: time.Now()}
	db.DB.Create(&u)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.GET("/auth/me", MeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "gooduser") || !contains(w.Body.String(), "igcse") {
		t.Errorf("expected username and exam level in response, got: %s", w.Body.String())
	}
}
