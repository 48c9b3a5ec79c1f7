package util

import (
	"errors"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

const (
	// DefaultMaxPages caps how many pages are sent to image-only backends.
	DefaultMaxPages = 10
	DefaultDPI      = 150
)

var ErrDocumentUnreadable = errors.New("document unreadable")

// Rasterizer renders the first pages of a PDF as PNG images, in page order.
type Rasterizer interface {
	Rasterize(path string, maxPages int) ([][]byte, error)
}

type pageSource interface {
	NumPage() int
	ImagePNG(pageNumber int, dpi float64) ([]byte, error)
	Close() error
}

type FitzRasterizer struct {
	DPI  float64
	open func(path string) (pageSource, error)
}

func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{
		DPI: DefaultDPI,
		open: func(path string) (pageSource, error) {
			doc, err := fitz.New(path)
			if err != nil {
				return nil, err
			}
			return doc, nil
		},
	}
}

func (r *FitzRasterizer) Rasterize(path string, maxPages int) ([][]byte, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	doc, err := r.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDocumentUnreadable, path, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if total <= 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrDocumentUnreadable, path)
	}

	n := min(total, maxPages)
	pages := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		data, err := doc.ImagePNG(i, r.DPI)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrDocumentUnreadable, i+1, err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}
