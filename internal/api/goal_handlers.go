package api

import (
	"net/http"
	"time"

	"examprep/internal/db"
	"examprep/internal/goal"

	"github.com/gin-gonic/gin"
)

type GoalRequest struct {
	Title      string     `json:"title" binding:"required"`
	ExamLevel  string     `json:"exam_level"`
	TargetDate *time.Time `json:"target_date"`
	Notes      string     `json:"notes"`
}

type GoalUpdateRequest struct {
	Title      *string    `json:"title"`
	ExamLevel  *string    `json:"exam_level"`
	TargetDate *time.Time `json:"target_date"`
	Status     *string    `json:"status"`
	Progress   *int       `json:"progress"`
	Notes      *string    `json:"notes"`
}

func validStatus(s string) bool {
	switch goal.Status(s) {
	case goal.StatusActive, goal.StatusCompleted, goal.StatusAbandoned:
		return true
	}
	return false
}

func goalResponse(g *goal.Goal) gin.H {
	return gin.H{
		"id":          g.PublicID,
		"title":       g.Title,
		"exam_level":  g.ExamLevel,
		"target_date": g.TargetDate,
		"status":      g.Status,
		"progress":    g.Progress,
		"notes":       g.Notes,
		"overdue":     g.Overdue(time.Now()),
		"createdAt":   g.CreatedAt,
		"updatedAt":   g.UpdatedAt,
	}
}

// POST /goals
func CreateGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req GoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing title"}})
			return
		}
		g := goal.Goal{
			UserID:     userId.(uint),
			Title:      req.Title,
			ExamLevel:  req.ExamLevel,
			TargetDate: req.TargetDate,
			Status:     goal.StatusActive,
			Notes:      req.Notes,
		}
		if err := db.DB.Create(&g).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Create error"}})
			return
		}
		c.JSON(http.StatusCreated, goalResponse(&g))
	}
}

// GET /goals
func ListGoalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var goals []goal.Goal
		if err := db.DB.Where("user_id = ?", userId.(uint)).Order("created_at desc").Find(&goals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		result := make([]gin.H, 0, len(goals))
		for i := range goals {
			result = append(result, goalResponse(&goals[i]))
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /goals/:id
func GetGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var g goal.Goal
		if err := db.DB.Where("public_id = ? AND user_id = ?", c.Param("id"), userId.(uint)).First(&g).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		c.JSON(http.StatusOK, goalResponse(&g))
	}
}

// PUT /goals/:id
func UpdateGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req GoalUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		var g goal.Goal
		if err := db.DB.Where("public_id = ? AND user_id = ?", c.Param("id"), userId.(uint)).First(&g).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		if req.Title != nil {
			g.Title = *req.Title
		}
		if req.ExamLevel != nil {
			g.ExamLevel = *req.ExamLevel
		}
		if req.TargetDate != nil {
			g.TargetDate = req.TargetDate
		}
		if req.Status != nil {
			if !validStatus(*req.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid status"}})
				return
			}
			g.Status = goal.Status(*req.Status)
		}
		if req.Progress != nil {
			g.Progress = goal.ClampProgress(*req.Progress)
			if g.Progress == 100 && g.Status == goal.StatusActive {
				g.Status = goal.StatusCompleted
			}
		}
		if req.Notes != nil {
			g.Notes = *req.Notes
		}
		if err := db.DB.Save(&g).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Update error"}})
			return
		}
		c.JSON(http.StatusOK, goalResponse(&g))
	}
}

// DELETE /goals/:id
func DeleteGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		res := db.DB.Where("public_id = ? AND user_id = ?", c.Param("id"), userId.(uint)).Delete(&goal.Goal{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
	}
}
