package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type pageRange struct {
	first int // 1-based, inclusive
	last  int // 1-based, inclusive
}

// pageRanges partitions totalPages into consecutive ranges of at most
// pageLimit pages each: disjoint, ascending, covering every page exactly once.
func pageRanges(totalPages, pageLimit int) []pageRange {
	if totalPages <= 0 || pageLimit <= 0 {
		return nil
	}
	var ranges []pageRange
	for first := 1; first <= totalPages; first += pageLimit {
		last := first + pageLimit - 1
		if last > totalPages {
			last = totalPages
		}
		ranges = append(ranges, pageRange{first: first, last: last})
	}
	return ranges
}

// Split partitions a source document into model-sized chunks. PDFs are cut
// into sub-documents of at most pageLimit pages; image and text media pass
// through as a single chunk. The source bytes are never mutated.
func Split(doc SourceDocument, pageLimit int) ([]Chunk, error) {
	if doc.Media != MediaPDF {
		return []Chunk{{
			Index:     0,
			FirstPage: 1,
			PageCount: 1,
			Media:     doc.Media,
			MIME:      doc.MIME,
			Data:      doc.Data,
		}}, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	total, err := api.PageCount(bytes.NewReader(doc.Data), conf)
	if err != nil {
		return nil, &ParseError{Media: MediaPDF, Err: err}
	}
	if total == 0 {
		return nil, &ParseError{Media: MediaPDF, Err: fmt.Errorf("document has no pages")}
	}

	ranges := pageRanges(total, pageLimit)
	chunks := make([]Chunk, 0, len(ranges))
	for i, pr := range ranges {
		var buf bytes.Buffer
		sel := []string{fmt.Sprintf("%d-%d", pr.first, pr.last)}
		if err := api.Trim(bytes.NewReader(doc.Data), &buf, sel, conf); err != nil {
			return nil, &ParseError{Media: MediaPDF, Err: fmt.Errorf("extracting pages %d-%d: %w", pr.first, pr.last, err)}
		}
		chunks = append(chunks, Chunk{
			Index:     i,
			FirstPage: pr.first,
			PageCount: pr.last - pr.first + 1,
			Media:     MediaPDF,
			MIME:      doc.MIME,
			Data:      buf.Bytes(),
		})
	}
	return chunks, nil
}
