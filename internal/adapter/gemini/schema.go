package gemini

import "github.com/google/generative-ai-go/genai"

// responseSchema declares the strict array-of-products shape the model must
// return. Field names line up with the wire tags in the catalog package.
func responseSchema() *genai.Schema {
	variant := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sku":           {Type: genai.TypeString},
			"price":         {Type: genai.TypeString, Description: "decimal string, no currency symbol"},
			"option1_name":  {Type: genai.TypeString},
			"option1_value": {Type: genai.TypeString},
			"grams":         {Type: genai.TypeNumber},
			"inventory_qty": {Type: genai.TypeNumber, Nullable: true},
		},
		Required: []string{"price", "option1_name", "option1_value"},
	}

	shopify := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"handle":          {Type: genai.TypeString},
			"title":           {Type: genai.TypeString},
			"body_html":       {Type: genai.TypeString},
			"tags":            {Type: genai.TypeString},
			"vendor":          {Type: genai.TypeString},
			"product_type":    {Type: genai.TypeString},
			"category":        {Type: genai.TypeString},
			"seo_title":       {Type: genai.TypeString},
			"seo_description": {Type: genai.TypeString},
			"variants":        {Type: genai.TypeArray, Items: variant},
		},
		Required: []string{"handle", "title", "variants"},
	}

	amazon := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"optimized_title":   {Type: genai.TypeString},
			"item_type_keyword": {Type: genai.TypeString},
			"feed_product_type": {Type: genai.TypeString},
			"brand":             {Type: genai.TypeString},
			"price":             {Type: genai.TypeString},
			"bullet_points":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"search_terms":      {Type: genai.TypeString},
			"ai_summary":        {Type: genai.TypeString},
		},
		Required: []string{"optimized_title", "bullet_points"},
	}

	aplus := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"modules": {Type: genai.TypeArray, Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"header": {Type: genai.TypeString},
					"body":   {Type: genai.TypeString},
				},
				Required: []string{"header", "body"},
			}},
			"image_alt_text": {Type: genai.TypeString},
		},
	}

	readiness := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status":         {Type: genai.TypeString},
			"missing_fields": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"status"},
	}

	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sync_id":               {Type: genai.TypeString},
				"shopify_service":       shopify,
				"amazon_fba_service":    amazon,
				"aplus_content_service": aplus,
				"readiness_report":      readiness,
			},
			Required: []string{"sync_id", "shopify_service", "amazon_fba_service", "aplus_content_service", "readiness_report"},
		},
	}
}
