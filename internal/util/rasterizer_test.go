package util

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDoc struct {
	pages    int
	failPage int
	closed   bool
	rendered []int
	dpi      float64
}

func (d *fakeDoc) NumPage() int { return d.pages }

func (d *fakeDoc) ImagePNG(n int, dpi float64) ([]byte, error) {
	if d.failPage > 0 && n == d.failPage-1 {
		return nil, errors.New("broken page")
	}
	d.rendered = append(d.rendered, n)
	d.dpi = dpi
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: uint8(n), A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

func rasterizerWith(doc *fakeDoc, openErr error) *FitzRasterizer {
	r := NewFitzRasterizer()
	r.open = func(string) (pageSource, error) {
		if openErr != nil {
			return nil, openErr
		}
		return doc, nil
	}
	return r
}

func TestRasterizeCapsPagesInOrder(t *testing.T) {
	doc := &fakeDoc{pages: 15}
	pages, err := rasterizerWith(doc, nil).Rasterize("deck.pdf", DefaultMaxPages)
	require.NoError(t, err)

	require.Len(t, pages, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, doc.rendered)
	assert.True(t, doc.closed)
	assert.EqualValues(t, DefaultDPI, doc.dpi)

	for i, data := range pages {
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		r, _, _, _ := img.At(0, 0).RGBA()
		assert.EqualValues(t, i, r>>8)
	}
}

func TestRasterizeShortDocument(t *testing.T) {
	pages, err := rasterizerWith(&fakeDoc{pages: 3}, nil).Rasterize("deck.pdf", 0)
	require.NoError(t, err)
	assert.Len(t, pages, 3)
}

func TestRasterizeUnreadable(t *testing.T) {
	_, err := rasterizerWith(nil, errors.New("not a pdf")).Rasterize("notes.txt", 10)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)

	_, err = rasterizerWith(&fakeDoc{pages: 0}, nil).Rasterize("empty.pdf", 10)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)

	doc := &fakeDoc{pages: 4, failPage: 2}
	_, err = rasterizerWith(doc, nil).Rasterize("broken.pdf", 10)
	assert.ErrorIs(t, err, ErrDocumentUnreadable)
	assert.True(t, doc.closed)
}
