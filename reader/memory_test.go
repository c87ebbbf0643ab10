package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfoutline/model"
)

func TestMemoryDocument(t *testing.T) {
	meta := model.Metadata{Title: "Handbook"}
	doc := NewMemoryDocument(meta,
		Page{Index: 7},
		PageOf(RawSpan{Text: "a"}, RawSpan{Text: "b"}),
	)

	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, meta, doc.Metadata())

	p, err := doc.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, 2, p.SpanCount())

	p, err = doc.Page(0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Index, "indexes follow position")

	_, err = doc.Page(2)
	assert.True(t, errors.Is(err, ErrPageOutOfRange))

	assert.False(t, doc.Closed())
	require.NoError(t, doc.Close())
	assert.True(t, doc.Closed())
}

func TestPageOf(t *testing.T) {
	p := PageOf(RawSpan{Text: "one"}, RawSpan{Text: "two"})
	require.Len(t, p.Blocks, 1)
	require.Len(t, p.Blocks[0].Lines, 2)
	assert.Equal(t, "two", p.Blocks[0].Lines[1].Spans[0].Text)
}
