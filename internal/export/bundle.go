package export

import (
	"archive/zip"
	"bytes"

	"shopsready/backend/internal/catalog"
)

// Bundle assembles the zip archive with all three artifacts. The whole
// catalog is serialized in memory; nothing streams.
func Bundle(cat catalog.Catalog) ([]byte, error) {
	workbook, err := AmazonWorkbook(cat)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		name string
		data []byte
	}{
		{ShopifyFilename, ShopifyCSV(cat)},
		{ReportFilename, Report(cat)},
		{AmazonFilename, workbook},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, &SerializationError{Format: "bundle archive", Err: err}
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, &SerializationError{Format: "bundle archive", Err: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &SerializationError{Format: "bundle archive", Err: err}
	}
	return buf.Bytes(), nil
}
