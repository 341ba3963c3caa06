package export

import (
	"strconv"
	"strings"

	"shopsready/backend/internal/catalog"
)

// shopifyHeader is the fixed 17-column order Shopify's product importer
// expects. Never reorder.
var shopifyHeader = []string{
	"Handle", "Title", "Body (HTML)", "Vendor", "Type",
	"Google Product Category", "Tags", "Published",
	"Option1 Name", "Option1 Value",
	"Variant Price", "Variant Grams", "Variant Inventory Tracker",
	"Variant Inventory Qty", "Variant SKU",
	"SEO Title", "SEO Description",
}

// ShopifyCSV renders one row per (product, variant) pair. Every cell is
// wrapped in double quotes regardless of content, so Excel never mangles
// leading zeros or embedded commas.
func ShopifyCSV(cat catalog.Catalog) []byte {
	var sb strings.Builder
	writeCSVRow(&sb, shopifyHeader)

	for _, rec := range cat {
		s := rec.Shopify
		for _, v := range s.Variants {
			writeCSVRow(&sb, []string{
				s.Handle,
				s.Title,
				s.BodyHTML,
				s.Vendor,
				s.ProductType,
				s.Category,
				s.Tags,
				"TRUE",
				v.OptionName,
				v.OptionValue,
				v.Price,
				strconv.Itoa(v.Grams),
				"shopify",
				strconv.Itoa(v.InventoryQty),
				v.SKU,
				s.SEOTitle,
				s.SEODescription,
			})
		}
	}
	return []byte(sb.String())
}

func writeCSVRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		sb.WriteByte('"')
	}
	sb.WriteByte('\n')
}
