package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/export"
)

func TestReport_ContainsAllListingFields(t *testing.T) {
	cat := twoVariantCatalog()
	cat[0].AmazonFBA.ItemTypeKeyword = "gadget"
	cat[0].AmazonFBA.FeedProductType = "home"
	cat[0].AmazonFBA.SearchTerms = "gadget tool acme"
	cat[0].AmazonFBA.Summary = "A useful gadget."
	cat[0].APlusContent.Modules = []catalog.ContentModule{
		{Header: "Built To Last", Body: "Steel housing."},
	}
	cat[0].Readiness.MissingFields = []string{"vendor", "category"}

	text := string(export.Report(cat))

	assert.Contains(t, text, "PRODUCT: Gadget")
	assert.Contains(t, text, "SYNC ID: gadget-1")
	assert.Contains(t, text, "AMAZON TITLE: Acme Gadget")
	assert.Contains(t, text, "FEED PRODUCT TYPE: home")
	assert.Contains(t, text, "ITEM TYPE KEYWORD: gadget")
	assert.Contains(t, text, "BACKEND SEARCH TERMS: gadget tool acme")
	assert.Contains(t, text, "AI SUMMARY: A useful gadget.")
	assert.Contains(t, text, "1. b1")
	assert.Contains(t, text, "5. b5")
	assert.Contains(t, text, "MODULE 1: Built To Last")
	assert.Contains(t, text, "Steel housing.")
	assert.Contains(t, text, "STATUS: ready (missing: vendor, category)")
}

func TestReport_DelimiterSeparatesProducts(t *testing.T) {
	cat := append(twoVariantCatalog(), twoVariantCatalog()...)
	text := string(export.Report(cat))

	delim := strings.Repeat("=", 50)
	assert.Equal(t, 2, strings.Count(text, delim), "one delimiter per product block")
}

func TestReport_Deterministic(t *testing.T) {
	cat := twoVariantCatalog()
	require.Equal(t, export.Report(cat), export.Report(cat))
}
