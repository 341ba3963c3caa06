package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"shopsready/backend/internal/catalog"
)

const amazonSheet = "Template"

// amazonHeader is the fixed 14-column Amazon flat-file layout.
var amazonHeader = []string{
	"item_name", "brand_name", "external_product_id", "external_product_id_type",
	"standard_price", "item_type_keyword", "feed_product_type", "seller_sku",
	"bullet_point1", "bullet_point2", "bullet_point3", "bullet_point4", "bullet_point5",
	"generic_keywords",
}

// AmazonWorkbook renders one row per product into a single-sheet xlsx
// workbook. external_product_id stays blank (the seller supplies UPCs after
// export); seller_sku is the product's sync ID.
func AmazonWorkbook(cat catalog.Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", amazonSheet); err != nil {
		return nil, &SerializationError{Format: "amazon flat file", Err: err}
	}

	header := make([]interface{}, len(amazonHeader))
	for i, h := range amazonHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(amazonSheet, "A1", &header); err != nil {
		return nil, &SerializationError{Format: "amazon flat file", Err: err}
	}

	for i, rec := range cat {
		a := rec.AmazonFBA
		row := []interface{}{
			a.Title,
			a.Brand,
			"",
			"UPC",
			a.Price,
			a.ItemTypeKeyword,
			a.FeedProductType,
			rec.SyncID,
			a.Bullets[0], a.Bullets[1], a.Bullets[2], a.Bullets[3], a.Bullets[4],
			a.SearchTerms,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(amazonSheet, cell, &row); err != nil {
			return nil, &SerializationError{Format: "amazon flat file", Err: err}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &SerializationError{Format: "amazon flat file", Err: err}
	}
	return buf.Bytes(), nil
}
