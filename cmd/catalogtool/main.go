package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"examprep/internal/catalog"
	"examprep/internal/importer"
	"examprep/internal/pdfmeta"
)

// catalogtool fetches a past-paper index page and prints the records it
// would contribute to the catalog, or probes a local PDF for metadata.
//
//	catalogtool -index https://papers.example.org/igcse/ -family cie
//	catalogtool -probe ./0500_s21_qp_12.pdf
func main() {
	indexURL := flag.String("index", "", "index page URL to scrape for PDF records")
	familyFlag := flag.String("family", "cie", "exam family of the index page: cie or edexcel")
	probePath := flag.String("probe", "", "local PDF file to probe for metadata")
	flag.Parse()

	switch {
	case *probePath != "":
		meta, err := pdfmeta.Probe(*probePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Probe error: %v\n", err)
			os.Exit(1)
		}
		printJSON(meta)
	case *indexURL != "":
		family := catalog.FamilyCIE
		if *familyFlag == "edexcel" {
			family = catalog.FamilyEdexcel
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		records, err := importer.New().FetchIndex(ctx, *indexURL, family)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fetch error: %v\n", err)
			os.Exit(1)
		}
		printJSON(records)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
		os.Exit(1)
	}
}
