package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Clamps(t *testing.T) {
	assert.Equal(t, Request{Page: 1, Limit: DefaultLimit}, FromRequest("", ""))
	assert.Equal(t, Request{Page: 1, Limit: DefaultLimit}, FromRequest("-3", "abc"))
	assert.Equal(t, Request{Page: 4, Limit: MaxLimit}, FromRequest("4", "500"))
}

func TestRequest_Skip(t *testing.T) {
	assert.Equal(t, int64(0), Request{Page: 1, Limit: 20}.Skip())
	assert.Equal(t, int64(40), Request{Page: 3, Limit: 20}.Skip())
}

func TestNew_Metadata(t *testing.T) {
	p := New(2, 10, 25)
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 10, p.Offset)

	empty := New(1, 10, 0)
	assert.Equal(t, 1, empty.Pages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
