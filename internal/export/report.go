package export

import (
	"fmt"
	"strings"

	"shopsready/backend/internal/catalog"
)

const reportDelimiter = "=================================================="

// Report renders the human-readable multi-channel listing text, one block per
// product, separated by a fixed delimiter line.
func Report(cat catalog.Catalog) []byte {
	var sb strings.Builder

	for _, rec := range cat {
		fmt.Fprintf(&sb, "PRODUCT: %s\n", rec.Shopify.Title)
		fmt.Fprintf(&sb, "SYNC ID: %s\n", rec.SyncID)
		fmt.Fprintf(&sb, "AMAZON TITLE: %s\n", rec.AmazonFBA.Title)
		fmt.Fprintf(&sb, "FEED PRODUCT TYPE: %s\n", rec.AmazonFBA.FeedProductType)
		fmt.Fprintf(&sb, "ITEM TYPE KEYWORD: %s\n", rec.AmazonFBA.ItemTypeKeyword)
		fmt.Fprintf(&sb, "BACKEND SEARCH TERMS: %s\n", rec.AmazonFBA.SearchTerms)
		fmt.Fprintf(&sb, "AI SUMMARY: %s\n", rec.AmazonFBA.Summary)

		sb.WriteString("POWER BULLETS:\n")
		for i, b := range rec.AmazonFBA.Bullets {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, b)
		}

		if len(rec.APlusContent.Modules) > 0 {
			sb.WriteString("A+ CONTENT:\n")
			for i, m := range rec.APlusContent.Modules {
				fmt.Fprintf(&sb, "  MODULE %d: %s\n", i+1, m.Header)
				fmt.Fprintf(&sb, "  %s\n", m.Body)
			}
		}

		fmt.Fprintf(&sb, "STATUS: %s", rec.Readiness.Status)
		if len(rec.Readiness.MissingFields) > 0 {
			fmt.Fprintf(&sb, " (missing: %s)", strings.Join(rec.Readiness.MissingFields, ", "))
		}
		sb.WriteString("\n")
		sb.WriteString(reportDelimiter)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}
