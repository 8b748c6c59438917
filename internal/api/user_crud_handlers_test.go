package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"examprep/internal/db"
	"examprep/internal/user"

	"github.com/gin-gonic/gin"
)

// GET /users/me
func TestGetMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.GET("/users/me", GetMeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "testuser") {
		t.Errorf("expected username in response, got: %s", w.Body.String())
	}
}

// PUT /users/me
func TestUpdateMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "testuser", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.PUT("/users/me", UpdateMeHandler())
	payload := UpdateMeRequest{Password: "newpw", ExamLevel: "igcse"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/me", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var u2 user.User
	if err := db.DB.First(&u2, u.ID).Error; err != nil {
		t.Fatalf("couldn't fetch updated user: %v", err)
	}
	if err := user.CheckPassword(u2.PasswordHash, "newpw"); err != nil {
		t.Errorf("password was not updated: %v", err)
	}
	if u2.ExamLevel != "igcse" {
		t.Errorf("exam level was not updated: %q", u2.ExamLevel)
	}
}

// DELETE /users/me
func TestDeleteMeHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "todelete", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", u.ID)
		c.Next()
	})
	r.DELETE("/users/me", DeleteMeHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&user.User{}).Where("id = ?", u.ID).Count(&count)
	if count != 0 {
		t.Error("user was not deleted")
	}
}

// GET /users [admin only]
func TestListUsersHandler_Forbidden(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "user")
		c.Next()
	})
	r.GET("/users", ListUsersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListUsersHandler_Admin(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	seedUser(t, "alpha", "admin")
	seedUser(t, "beta", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "admin")
		c.Next()
	})
	r.GET("/users", ListUsersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !contains(w.Body.String(), "alpha") || !contains(w.Body.String(), "beta") {
		t.Errorf("expected both usernames in response, got: %s", w.Body.String())
	}
}

// POST /users [admin only]
func TestCreateUserHandler_Admin(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "admin")
		c.Next()
	})
	r.POST("/users", CreateUserHandler())
	payload := map[string]string{"username": "newbie", "password": "pw", "examLevel": "alevel"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var u user.User
	if err := db.DB.Where("username = ?", "newbie").First(&u).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if u.Role != user.RoleUser {
		t.Errorf("created user should get the user role, got %q", u.Role)
	}
}

// PUT /users/:id [admin only]
func TestUpdateUserByIdHandler_Admin(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	target := seedUser(t, "target", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "admin")
		c.Next()
	})
	r.PUT("/users/:id", UpdateUserByIdHandler())
	payload := UpdateUserRequest{Role: "admin"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/users/"+strconv.Itoa(int(target.ID)), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var u user.User
	if err := db.DB.First(&u, target.ID).Error; err != nil {
		t.Fatalf("couldn't fetch updated user: %v", err)
	}
	if u.Role != user.RoleAdmin {
		t.Errorf("role was not promoted, got %q", u.Role)
	}
}

// DELETE /users/:id [admin only]
func TestDeleteUserByIdHandler_Admin(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	target := seedUser(t, "target", "user")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("role", "admin")
		c.Next()
	})
	r.DELETE("/users/:id", DeleteUserByIdHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/users/"+strconv.Itoa(int(target.ID)), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&user.User{}).Where("id = ?", target.ID).Count(&count)
	if count != 0 {
		t.Error("user was not deleted")
	}
}
