package importer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"examprep/internal/catalog"
	"examprep/internal/search"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Importer turns an exam-board HTML index page into catalog records. Used
// offline by the catalogtool binary, never at serve time.
type Importer struct {
	client *http.Client
}

func New() *Importer {
	return &Importer{client: &http.Client{Timeout: 30 * time.Second}}
}

var typeByDocCode = map[string]catalog.ResourceType{
	"qp": catalog.TypeQuestionPaper,
	"ms": catalog.TypeMarkScheme,
	"in": catalog.TypeInsert,
	"er": catalog.TypeExaminerReport,
	"gt": catalog.TypeGradeThresholds,
}

var sessionByCode = map[string]string{
	"s":  "June",
	"m":  "March",
	"w":  "November",
	"j":  "January",
	"sp": "Specimen",
}

// ParseIndex extracts PDF records from an index page. The link text is the
// title; type and session are derived from the filename and left empty
// when the filename is unparseable.
func (imp *Importer) ParseIndex(baseURL string, family catalog.Family, r io.Reader) ([]catalog.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse index html: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	var records []catalog.Record
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		fileName := path.Base(resolved.Path)
		if _, dup := seen[fileName]; dup {
			return
		}
		seen[fileName] = struct{}{}

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title = strings.TrimSuffix(fileName, ".pdf")
		}

		parsed := search.ParseFileName(fileName, family)
		rec := catalog.Record{
			ID:       strings.TrimSuffix(fileName, ".pdf"),
			Title:    title,
			FileName: fileName,
			URL:      resolved.String(),
			Type:     typeByDocCode[parsed.DocType],
			Session:  sessionByCode[parsed.SessionCode],
		}
		records = append(records, rec)
	})
	return records, nil
}

// FetchIndex downloads and parses an index page.
func (imp *Importer) FetchIndex(ctx context.Context, indexURL string, family catalog.Family) ([]catalog.Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", indexURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index returned status %d", resp.StatusCode)
	}
	return imp.ParseIndex(indexURL, family, resp.Body)
}

// FetchDescription extracts readable summary text from a resource page,
// for records whose index entry links a landing page rather than the PDF
// itself. Failures are logged and return empty text; the importer keeps
// going.
func (imp *Importer) FetchDescription(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return ""
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		log.Printf("[Importer] description fetch failed for %s: %v", pageURL, err)
		return ""
	}
	defer resp.Body.Close()
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(resp.Body, parsedURL)
	if err != nil {
		log.Printf("[Importer] readability failed for %s: %v", pageURL, err)
		return ""
	}
	return strings.TrimSpace(article.Excerpt)
}
