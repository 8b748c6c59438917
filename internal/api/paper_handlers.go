package api

import (
	"net/http"
	"strings"
	"sync"

	"examprep/internal/catalog"
	"examprep/internal/search"

	"github.com/gin-gonic/gin"
)

// Per-level search state: the flattened index is built once, the evaluator
// serializes concurrent queries so a slow evaluation can never overwrite a
// newer one's results.
type levelSearch struct {
	entries   []search.Entry
	evaluator search.Evaluator
}

var (
	levelSearchMu sync.Mutex
	levelSearches = map[string]*levelSearch{}
)

func searchStateFor(level *catalog.Level) *levelSearch {
	levelSearchMu.Lock()
	defer levelSearchMu.Unlock()
	ls, ok := levelSearches[level.Key]
	if !ok {
		ls = &levelSearch{entries: search.BuildIndex(level)}
		levelSearches[level.Key] = ls
	}
	return ls
}

// GET /papers/:level
func ListPapersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		level, ok := catalog.LevelByKey(c.Param("level"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Unknown exam level"}})
			return
		}
		grouped := search.GroupRecords(level.Records(), false)
		c.JSON(http.StatusOK, gin.H{
			"level":    level.Key,
			"title":    level.Title,
			"examCode": level.ExamCode,
			"groups":   grouped.Groups,
			"total":    grouped.Total(),
		})
	}
}

// GET /papers/:level/search?q=
func SearchPapersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		level, ok := catalog.LevelByKey(c.Param("level"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Unknown exam level"}})
			return
		}
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusOK, gin.H{
				"level":   level.Key,
				"query":   "",
				"groups":  []search.Group{},
				"total":   0,
				"results": []gin.H{},
			})
			return
		}
		ls := searchStateFor(level)
		scored := ls.evaluator.Run(query, ls.entries)

		records := make([]catalog.Record, 0, len(scored))
		results := make([]gin.H, 0, len(scored))
		for _, s := range scored {
			records = append(records, s.Entry.Record)
			results = append(results, gin.H{
				"id":       s.Entry.Record.ID,
				"title":    s.Entry.Record.Title,
				"url":      s.Entry.Record.URL,
				"type":     s.Entry.Record.Type,
				"session":  s.Entry.Record.Session,
				"category": s.Entry.CategoryTitle,
				"section":  s.Entry.SectionTitle,
				"score":    s.Score,
			})
		}
		grouped := search.GroupRecords(records, true)
		c.JSON(http.StatusOK, gin.H{
			"level":   level.Key,
			"query":   query,
			"groups":  grouped.Groups,
			"total":   grouped.Total(),
			"results": results,
		})
	}
}
