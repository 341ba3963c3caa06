// Package export turns a finalized catalog into downloadable storefront
// artifacts. Every serializer is a pure function of the catalog: same records
// in, byte-identical file out.
package export

import "fmt"

// Fixed artifact names inside the bundle and for direct downloads.
const (
	ShopifyFilename = "shopify_import.csv"
	ReportFilename  = "amazon_listings.txt"
	AmazonFilename  = "amazon_fba_flat_file.xlsx"
	BundleFilename  = "ShopsReady_Architect_Package.zip"
)

// SerializationError aborts a single export action. The in-memory catalog is
// untouched, so the user can correct the offending field and retry.
type SerializationError struct {
	Format string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
