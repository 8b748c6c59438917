package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"examprep/internal/db"
	"examprep/internal/goal"

	"github.com/gin-gonic/gin"
)

func goalRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	r.POST("/goals", CreateGoalHandler())
	r.GET("/goals", ListGoalsHandler())
	r.GET("/goals/:id", GetGoalHandler())
	r.PUT("/goals/:id", UpdateGoalHandler())
	r.DELETE("/goals/:id", DeleteGoalHandler())
	return r
}

func TestCreateGoalHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "goaluser", "user")
	r := goalRouter(u.ID)

	payload := GoalRequest{Title: "Finish all June 2021 papers", ExamLevel: "igcse"}
	b, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/goals", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var g goal.Goal
	if err := db.DB.Where("user_id = ?", u.ID).First(&g).Error; err != nil {
		t.Fatalf("goal not created: %v", err)
	}
	if g.PublicID == "" {
		t.Error("goal should get a public id")
	}
	if g.Status != goal.StatusActive {
		t.Errorf("new goal should be active, got %q", g.Status)
	}
}

func TestCreateGoalHandler_MissingTitle(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "goaluser", "user")
	r := goalRouter(u.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/goals", bytes.NewReader([]byte(`{"exam_level":"igcse"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateGoalHandler_ProgressClampAndComplete(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "goaluser", "user")
	g := goal.Goal{UserID: u.ID, Title: "Practice summaries", Status: goal.StatusActive}
	if err := db.DB.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	r := goalRouter(u.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/goals/"+g.PublicID, bytes.NewReader([]byte(`{"progress":150}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var g2 goal.Goal
	if err := db.DB.First(&g2, g.ID).Error; err != nil {
		t.Fatalf("couldn't fetch updated goal: %v", err)
	}
	if g2.Progress != 100 {
		t.Errorf("progress should clamp to 100, got %d", g2.Progress)
	}
	if g2.Status != goal.StatusCompleted {
		t.Errorf("full progress should complete the goal, got %q", g2.Status)
	}
}

func TestUpdateGoalHandler_InvalidStatus(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "goaluser", "user")
	g := goal.Goal{UserID: u.ID, Title: "Practice summaries", Status: goal.StatusActive}
	if err := db.DB.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	r := goalRouter(u.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/goals/"+g.PublicID, bytes.NewReader([]byte(`{"status":"paused"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGoalHandlers_ScopedToOwner(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	owner := seedUser(t, "owner", "user")
	other := seedUser(t, "other", "user")
	g := goal.Goal{UserID: owner.ID, Title: "Owner goal", Status: goal.StatusActive}
	if err := db.DB.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}

	r := goalRouter(other.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/goals/"+g.PublicID, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user's goal, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/goals/"+g.PublicID, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting another user's goal, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteGoalHandler(t *testing.T) {
	setupUserDB(t)
	resetUserTable(t)
	u := seedUser(t, "goaluser", "user")
	g := goal.Goal{UserID: u.ID, Title: "To delete", Status: goal.StatusActive}
	if err := db.DB.Create(&g).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}
	r := goalRouter(u.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/goals/"+g.PublicID, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.DB.Model(&goal.Goal{}).Where("id = ?", g.ID).Count(&count)
	if count != 0 {
		t.Error("goal was not deleted")
	}
}
