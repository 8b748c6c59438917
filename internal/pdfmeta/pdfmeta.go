package pdfmeta

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/model"
)

// Meta is what the importer records about a downloaded PDF.
type Meta struct {
	Pages     int
	Title     string
	Encrypted bool
}

// Probe reads basic metadata from a PDF on disk. Returns an error for
// unreadable files; the catalogtool reports and skips those.
func Probe(path string) (Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return Meta{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := model.NewPdfReader(f)
	if err != nil {
		return Meta{}, fmt.Errorf("read pdf: %w", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return Meta{}, err
	}
	meta := Meta{Encrypted: encrypted}
	if encrypted {
		// Try the empty password; many exam PDFs are owner-locked only
		if ok, err := reader.Decrypt([]byte("")); err != nil || !ok {
			return meta, fmt.Errorf("pdf is password protected")
		}
	}

	pages, err := reader.GetNumPages()
	if err != nil {
		return meta, err
	}
	meta.Pages = pages

	if info, err := reader.GetPdfInfo(); err == nil && info != nil && info.Title != nil {
		meta.Title = info.Title.Decoded()
	}
	return meta, nil
}
