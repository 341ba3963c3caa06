package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shopsready/backend/internal/export"
)

func TestAmazonWorkbook_SheetAndHeader(t *testing.T) {
	data, err := export.AmazonWorkbook(twoVariantCatalog())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Template"}, f.GetSheetList())

	rows, err := f.GetRows("Template")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, []string{
		"item_name", "brand_name", "external_product_id", "external_product_id_type",
		"standard_price", "item_type_keyword", "feed_product_type", "seller_sku",
		"bullet_point1", "bullet_point2", "bullet_point3", "bullet_point4", "bullet_point5",
		"generic_keywords",
	}, rows[0])
}

func TestAmazonWorkbook_OneRowPerProduct(t *testing.T) {
	// Two variants, still one Amazon row.
	data, err := export.AmazonWorkbook(twoVariantCatalog())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Template")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, "Acme Gadget", row[0])
	assert.Equal(t, "Acme", row[1])

	// external_product_id stays blank; excelize trims trailing empties, so
	// read the cell directly.
	id, err := f.GetCellValue("Template", "C2")
	require.NoError(t, err)
	assert.Equal(t, "", id)

	idType, err := f.GetCellValue("Template", "D2")
	require.NoError(t, err)
	assert.Equal(t, "UPC", idType)

	sku, err := f.GetCellValue("Template", "H2")
	require.NoError(t, err)
	assert.Equal(t, "gadget-1", sku, "seller_sku is the sync id")

	b5, err := f.GetCellValue("Template", "M2")
	require.NoError(t, err)
	assert.Equal(t, "b5", b5)
}
