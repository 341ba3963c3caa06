package gemini

import (
	"fmt"
	"strings"

	"shopsready/backend/internal/catalog"
)

// buildInstructions renders the fixed extraction rule set for one run. The
// rules embed the user's fallback policy so the model knows what to leave
// blank; price markup and quantity defaults are applied server-side after
// validation, so the model is told to report source values verbatim.
func buildInstructions(cfg catalog.Config) string {
	var sb strings.Builder

	sb.WriteString(`You are a product data extraction engine for e-commerce catalogs.
Analyze the attached supplier document and return EVERY distinct product you find
as a JSON array matching the response schema. Rules:

VENDOR: Use, in priority order: (1) the supplier/company name from the PDF
metadata, (2) a supplier name detected in the document header, (3) an empty
string. NEVER use "ShopsReady" or the name of this tool as the vendor.

TITLES: Copy product titles verbatim from the source. For the Amazon optimized
title only, reformat as "Brand + Product Name + Key Attribute + Size/Count".

DESCRIPTIONS: Copy descriptions verbatim. Emit HTML markup for the Shopify
body, plain text for Amazon. Only if the source text exceeds roughly 2000
characters, summarize it while preserving every technical specification.

PRICES: Report the wholesale/net price exactly as printed in the source, with
currency symbols removed, as a decimal string (e.g. "19.99"). Do not apply any
markup; pricing policy is applied downstream.

STOCK: Report the explicit stock/inventory quantity when the source states
one. When the source has no stock figure, set inventory_qty to null. Never
invent quantities.

VARIANTS: Emit one variant per purchasable option (color, size, pack count).
A product with no options still describes itself well enough for one variant.

AMAZON: Provide exactly 5 benefit-led bullet points, an item type keyword, a
feed product type, backend search terms (no commas, no brand names), and a
short semantic summary of the product.

A+ CONTENT: Provide 2-4 content modules (header + body) and image alt text.

READINESS: Set readiness_report.status to "ready" when every required field
was found in the source, otherwise "needs_review", and list the missing field
names.

SYNC ID: Assign each product a short unique sync_id slug derived from its
title.
`)

	if cfg.UseFallbacks && cfg.DefaultProductType != "" {
		fmt.Fprintf(&sb, "\nWhen the source does not state a product category/type, the downstream system will use %q; leave product_type empty rather than guessing.\n", cfg.DefaultProductType)
	}

	switch cfg.Channels {
	case catalog.ChannelShopify:
		sb.WriteString("\nTarget channel: Shopify only. Amazon fields may be minimal but must be present.\n")
	case catalog.ChannelAmazon:
		sb.WriteString("\nTarget channel: Amazon only. Shopify fields may be minimal but must be present.\n")
	default:
		sb.WriteString("\nTarget channels: Shopify and Amazon. Populate both fully.\n")
	}

	return sb.String()
}
