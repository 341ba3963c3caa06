package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ErrMalformedPayload means the model response was not a JSON array of objects.
// The caller treats this as a failed chunk.
var ErrMalformedPayload = errors.New("payload is not a JSON array of products")

// wire mirrors the model's output schema. Quantities are nullable so an absent
// stock value is distinguishable from an explicit zero.
type wireRecord struct {
	SyncID  string `json:"sync_id"`
	Shopify *struct {
		Handle         string `json:"handle"`
		Title          string `json:"title"`
		BodyHTML       string `json:"body_html"`
		Tags           string `json:"tags"`
		Vendor         string `json:"vendor"`
		ProductType    string `json:"product_type"`
		Category       string `json:"category"`
		SEOTitle       string `json:"seo_title"`
		SEODescription string `json:"seo_description"`
		Variants       []struct {
			SKU          string   `json:"sku"`
			Price        string   `json:"price"`
			OptionName   string   `json:"option1_name"`
			OptionValue  string   `json:"option1_value"`
			Grams        *float64 `json:"grams"`
			InventoryQty *float64 `json:"inventory_qty"`
		} `json:"variants"`
	} `json:"shopify_service"`
	Amazon *struct {
		Title           string   `json:"optimized_title"`
		ItemTypeKeyword string   `json:"item_type_keyword"`
		FeedProductType string   `json:"feed_product_type"`
		Brand           string   `json:"brand"`
		Price           string   `json:"price"`
		Bullets         []string `json:"bullet_points"`
		SearchTerms     string   `json:"search_terms"`
		Summary         string   `json:"ai_summary"`
	} `json:"amazon_fba_service"`
	APlus *struct {
		Modules []struct {
			Header string `json:"header"`
			Body   string `json:"body"`
		} `json:"modules"`
		ImageAltText string `json:"image_alt_text"`
	} `json:"aplus_content_service"`
	Readiness *struct {
		Status        string   `json:"status"`
		MissingFields []string `json:"missing_fields"`
	} `json:"readiness_report"`
}

// ParseRecords is the single validation boundary between the model's raw text
// response and the typed catalog. The top-level value must be a JSON array;
// anything else rejects the whole chunk. Individual records missing a required
// sub-structure are dropped whole, never appended partially.
func ParseRecords(raw []byte, cfg Config) (Catalog, error) {
	trimmed := strings.TrimSpace(string(raw))
	// Models occasionally wrap JSON in a markdown fence despite the MIME hint.
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrMalformedPayload)
	}

	var wires []wireRecord
	if err := json.Unmarshal([]byte(trimmed), &wires); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var out Catalog
	for i, w := range wires {
		rec, ok := buildRecord(w, cfg)
		if !ok {
			slog.Warn("dropping incomplete product record", "index", i, "sync_id", w.SyncID)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func buildRecord(w wireRecord, cfg Config) (Record, bool) {
	if w.SyncID == "" || w.Shopify == nil || w.Amazon == nil || w.APlus == nil || w.Readiness == nil {
		return Record{}, false
	}

	rec := Record{
		SyncID: w.SyncID,
		Shopify: ShopifyService{
			Handle:         w.Shopify.Handle,
			Title:          w.Shopify.Title,
			BodyHTML:       w.Shopify.BodyHTML,
			Tags:           w.Shopify.Tags,
			Vendor:         w.Shopify.Vendor,
			ProductType:    w.Shopify.ProductType,
			Category:       w.Shopify.Category,
			SEOTitle:       w.Shopify.SEOTitle,
			SEODescription: w.Shopify.SEODescription,
		},
		AmazonFBA: AmazonFBAService{
			Title:           w.Amazon.Title,
			ItemTypeKeyword: w.Amazon.ItemTypeKeyword,
			FeedProductType: w.Amazon.FeedProductType,
			Brand:           w.Amazon.Brand,
			Price:           NormalizePrice(w.Amazon.Price, cfg),
			SearchTerms:     w.Amazon.SearchTerms,
			Summary:         w.Amazon.Summary,
		},
		APlusContent: APlusContentService{
			ImageAltText: w.APlus.ImageAltText,
		},
		Readiness: ReadinessReport{
			Status:        w.Readiness.Status,
			MissingFields: w.Readiness.MissingFields,
		},
	}

	for i, b := range w.Amazon.Bullets {
		if i >= 5 {
			break
		}
		rec.AmazonFBA.Bullets[i] = b
	}

	for _, m := range w.APlus.Modules {
		rec.APlusContent.Modules = append(rec.APlusContent.Modules, ContentModule{Header: m.Header, Body: m.Body})
	}

	if rec.Shopify.ProductType == "" && cfg.UseFallbacks {
		rec.Shopify.ProductType = cfg.DefaultProductType
	}
	if rec.AmazonFBA.FeedProductType == "" && cfg.UseFallbacks {
		rec.AmazonFBA.FeedProductType = cfg.DefaultProductType
	}

	for _, v := range w.Shopify.Variants {
		rec.Shopify.Variants = append(rec.Shopify.Variants, Variant{
			SKU:          v.SKU,
			Price:        NormalizePrice(v.Price, cfg),
			OptionName:   v.OptionName,
			OptionValue:  v.OptionValue,
			Grams:        clampInt(v.Grams),
			InventoryQty: resolveQuantity(v.InventoryQty, cfg),
		})
	}

	// Shopify imports require at least one variant row.
	if len(rec.Shopify.Variants) == 0 {
		rec.Shopify.Variants = []Variant{{
			SKU:          rec.SyncID,
			Price:        rec.AmazonFBA.Price,
			OptionName:   "Title",
			OptionValue:  "Default Title",
			InventoryQty: resolveQuantity(nil, cfg),
		}}
	}

	rec.Feedback = buildFeedback(rec, cfg)
	return rec, true
}

// resolveQuantity applies the stock resolution order: explicit value in the
// source, then the configured default when fallbacks are enabled, then zero.
func resolveQuantity(qty *float64, cfg Config) int {
	if qty == nil {
		if cfg.UseFallbacks {
			return cfg.DefaultQuantity
		}
		return 0
	}
	n := int(*qty)
	if n < 0 {
		return 0
	}
	return n
}

func clampInt(v *float64) int {
	if v == nil || *v < 0 {
		return 0
	}
	return int(*v)
}

// NormalizePrice strips currency symbols and grouping characters from a source
// price and applies the configured markup multiplier when fallbacks are
// enabled. The result is a plain decimal string with two fraction digits.
func NormalizePrice(raw string, cfg Config) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return ""
	}

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return ""
	}
	if cfg.UseFallbacks && cfg.PriceMarkup > 0 {
		val *= cfg.PriceMarkup
	}
	return strconv.FormatFloat(val, 'f', 2, 64)
}

func buildFeedback(rec Record, cfg Config) SuccessFeedback {
	var ready []string
	if (cfg.Channels == ChannelShopify || cfg.Channels == ChannelBoth || cfg.Channels == "") &&
		rec.Shopify.Title != "" && len(rec.Shopify.Variants) > 0 {
		ready = append(ready, string(ChannelShopify))
	}
	if (cfg.Channels == ChannelAmazon || cfg.Channels == ChannelBoth || cfg.Channels == "") &&
		rec.AmazonFBA.Title != "" {
		ready = append(ready, string(ChannelAmazon))
	}

	return SuccessFeedback{
		VariantCount:  len(rec.Shopify.Variants),
		ChannelsReady: ready,
		Message:       fmt.Sprintf("Extracted %d variant(s), ready for %d channel(s)", len(rec.Shopify.Variants), len(ready)),
	}
}
