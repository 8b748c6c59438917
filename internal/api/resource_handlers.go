package api

import (
	"net/http"

	"examprep/internal/weburl"

	"github.com/gin-gonic/gin"
)

func resourceResponse(res weburl.Resolution) gin.H {
	return gin.H{
		"id":            res.Record.ID,
		"title":         res.Record.Title,
		"url":           res.Record.URL,
		"type":          res.Record.Type,
		"session":       res.Record.Session,
		"level":         res.LevelKey,
		"category":      res.CategoryKey,
		"section":       res.SectionKey,
		"canonicalPath": "/resources" + res.CanonicalPath,
	}
}

// GET /resources/:level/:category/:seg3/:slug
// Route params share the :seg3 name with the legacy route below so both
// can live in the same routing tree.
func GetResourceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := weburl.Resolve(c.Param("level"), c.Param("category"), c.Param("seg3"), c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Resource not found"}})
			return
		}
		c.JSON(http.StatusOK, resourceResponse(res))
	}
}

// GET /resources/:level/:category/:seg3 — legacy links without a section
// segment, so :seg3 is the slug. The record is resolved by scanning the
// category and the client is redirected to the canonical four-segment path.
func GetLegacyResourceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, ok := weburl.Resolve(c.Param("level"), c.Param("category"), "", c.Param("seg3"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Resource not found"}})
			return
		}
		c.Redirect(http.StatusMovedPermanently, "/resources"+res.CanonicalPath)
	}
}
