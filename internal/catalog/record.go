package catalog

// ChannelTarget selects which storefront channels a run produces output for.
type ChannelTarget string

const (
	ChannelShopify ChannelTarget = "shopify"
	ChannelAmazon  ChannelTarget = "amazon"
	ChannelBoth    ChannelTarget = "both"
)

// Config is the user-supplied fallback policy for one pipeline run.
// Immutable once the run starts; the extraction prompt and the server-side
// fallback logic both read from it.
type Config struct {
	UseFallbacks       bool          `json:"use_fallbacks"`
	DefaultQuantity    int           `json:"default_quantity"`
	PriceMarkup        float64       `json:"price_markup"`
	DefaultProductType string        `json:"default_product_type"`
	Channels           ChannelTarget `json:"channels"`
}

// Variant is one purchasable option of a product (Shopify variant row).
type Variant struct {
	SKU          string `json:"sku"`
	Price        string `json:"price"`
	OptionName   string `json:"option1_name"`
	OptionValue  string `json:"option1_value"`
	Grams        int    `json:"grams"`
	InventoryQty int    `json:"inventory_qty"`
}

type ShopifyService struct {
	Handle         string    `json:"handle"`
	Title          string    `json:"title"`
	BodyHTML       string    `json:"body_html"`
	Tags           string    `json:"tags"`
	Vendor         string    `json:"vendor"`
	ProductType    string    `json:"product_type"`
	Category       string    `json:"category"`
	SEOTitle       string    `json:"seo_title"`
	SEODescription string    `json:"seo_description"`
	Variants       []Variant `json:"variants"`
}

type AmazonFBAService struct {
	Title           string    `json:"optimized_title"`
	ItemTypeKeyword string    `json:"item_type_keyword"`
	FeedProductType string    `json:"feed_product_type"`
	Brand           string    `json:"brand"`
	Price           string    `json:"price"`
	Bullets         [5]string `json:"bullet_points"`
	SearchTerms     string    `json:"search_terms"`
	Summary         string    `json:"ai_summary"`
}

type ContentModule struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type APlusContentService struct {
	Modules      []ContentModule `json:"modules"`
	ImageAltText string          `json:"image_alt_text"`
}

type ReadinessReport struct {
	Status        string   `json:"status"`
	MissingFields []string `json:"missing_fields"`
}

// SuccessFeedback is computed after validation, never requested from the model.
type SuccessFeedback struct {
	VariantCount  int      `json:"variant_count"`
	ChannelsReady []string `json:"channels_ready"`
	Message       string   `json:"message"`
}

// Record is the canonical extracted product spanning all channel representations.
// SyncID correlates the channel-specific views of the same product.
type Record struct {
	SyncID       string              `json:"sync_id"`
	Shopify      ShopifyService      `json:"shopify_service"`
	AmazonFBA    AmazonFBAService    `json:"amazon_fba_service"`
	APlusContent APlusContentService `json:"aplus_content_service"`
	Readiness    ReadinessReport     `json:"readiness_report"`
	Feedback     SuccessFeedback     `json:"success_feedback"`
}

// Catalog is the ordered product collection for one pipeline run.
// Insertion order is chunk processing order.
type Catalog []Record
