package api

import (
	"net/http"

	"examprep/internal/config"
	"examprep/internal/db"
	"examprep/internal/plan"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// POST /plans
func CreatePlanHandler(cfg *config.Config) gin.HandlerFunc {
	gen := plan.NewGenerator(cfg.Planner)
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req plan.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing exam_level"}})
			return
		}
		doc, err := gen.Generate(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": "Plan generation failed"}})
			return
		}
		p := plan.StudyPlan{
			UserID:     userId.(uint),
			ExamLevel:  req.ExamLevel,
			TargetDate: req.TargetDate,
			Prompt:     plan.BuildPrompt(req),
			Document:   datatypes.JSON(doc),
			ModelName:  cfg.Planner.Model,
		}
		if err := db.DB.Create(&p).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Plan save error"}})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// GET /plans
func ListPlansHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var plans []plan.StudyPlan
		if err := db.DB.Where("user_id = ?", userId.(uint)).Order("created_at desc").Find(&plans).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, plans)
	}
}

// GET /plans/:id
func GetPlanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var p plan.StudyPlan
		if err := db.DB.Where("public_id = ? AND user_id = ?", c.Param("id"), userId.(uint)).First(&p).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Plan not found"}})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
