package api

import (
	"net/http"
	"strconv"

	"examprep/internal/db"
	"examprep/internal/vocab"

	"github.com/gin-gonic/gin"
)

const defaultDrillSize = 10

// GET /vocab/drill?level=&n=
func VocabDrillHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		n := defaultDrillSize
		if raw := c.Query("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 50 {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid drill size"}})
				return
			}
			n = parsed
		}

		q := db.DB.Model(&vocab.Word{})
		if level := c.Query("level"); level != "" {
			q = q.Where("exam_level = ?", level)
		}
		var words []vocab.Word
		if err := q.Find(&words).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Word lookup error"}})
			return
		}

		var reviews []vocab.Review
		if err := db.DB.Where("user_id = ?", userId.(uint)).Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Review lookup error"}})
			return
		}

		stats := make([]vocab.WordStats, 0, len(words))
		for _, w := range words {
			s := vocab.WordStats{Word: w}
			for _, r := range reviews {
				if r.WordID != w.ID {
					continue
				}
				s.Attempts++
				if r.Correct && r.CreatedAt.After(s.LastCorrect) {
					s.LastCorrect = r.CreatedAt
				}
			}
			stats = append(stats, s)
		}

		c.JSON(http.StatusOK, gin.H{"words": vocab.SelectDrill(stats, n)})
	}
}

type ReviewRequest struct {
	WordID  uint `json:"word_id" binding:"required"`
	Correct bool `json:"correct"`
}

// POST /vocab/review
func VocabReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, _ := c.Get("userId")
		var req ReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Missing word_id"}})
			return
		}
		var w vocab.Word
		if err := db.DB.First(&w, req.WordID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Word not found"}})
			return
		}
		review := vocab.Review{
			UserID:  userId.(uint),
			WordID:  req.WordID,
			Correct: req.Correct,
		}
		if err := db.DB.Create(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Review save error"}})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review recorded"})
	}
}
