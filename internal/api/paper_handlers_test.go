package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"examprep/internal/catalog"

	"github.com/gin-gonic/gin"
)

func mustLoadCatalog(t *testing.T) {
	if _, err := catalog.Load(); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
}

func TestListPapersHandler_UnknownLevel(t *testing.T) {
	mustLoadCatalog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/papers/:level", ListPapersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/papers/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown level, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListPapersHandler_GroupsAllRecords(t *testing.T) {
	mustLoadCatalog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/papers/:level", ListPapersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/papers/igcse", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Level  string `json:"level"`
		Total  int    `json:"total"`
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body.Level != "igcse" {
		t.Errorf("expected level igcse, got %q", body.Level)
	}
	level, _ := catalog.LevelByKey("igcse")
	if want := len(level.Records()); body.Total != want {
		t.Errorf("grouping lost records: total %d, want %d", body.Total, want)
	}
	if len(body.Groups) == 0 {
		t.Fatal("expected at least one group")
	}
}

func TestSearchPapersHandler_EmptyQuery(t *testing.T) {
	mustLoadCatalog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/papers/:level/search", SearchPapersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/papers/igcse/search?q=", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Total   int               `json:"total"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body.Total != 0 || len(body.Results) != 0 {
		t.Errorf("empty query should return no results, got total %d", body.Total)
	}
}

func TestSearchPapersHandler_RelevantFirst(t *testing.T) {
	mustLoadCatalog(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/papers/:level/search", SearchPapersHandler())
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/papers/igcse/search?q=june+2021+mark+scheme", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Results []struct {
			Title string `json:"title"`
			Type  string `json:"type"`
			Score int    `json:"score"`
		} `json:"results"`
		Groups []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(body.Results) == 0 {
		t.Fatal("expected search results")
	}
	if body.Results[0].Type != string(catalog.TypeMarkScheme) {
		t.Errorf("expected a mark scheme ranked first, got %q (%q)", body.Results[0].Type, body.Results[0].Title)
	}
	if body.Results[0].Score <= 0 {
		t.Errorf("top result should carry a positive score, got %d", body.Results[0].Score)
	}
	// Search-mode grouping qualifies the session with its year.
	foundYearKey := false
	for _, g := range body.Groups {
		if g.Key == "June 2021" {
			foundYearKey = true
		}
	}
	if !foundYearKey {
		t.Errorf("expected a 'June 2021' group key, got %+v", body.Groups)
	}
}
