package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	limit, offset := Paginate(1, 16)
	assert.Equal(t, 16, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Paginate(3, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	// Non-positive inputs clamp to 1
	limit, offset = Paginate(0, 0)
	assert.Equal(t, 1, limit)
	assert.Equal(t, 0, offset)

	_, offset = Paginate(-5, 16)
	assert.Equal(t, 0, offset)
}

func TestPageData(t *testing.T) {
	data := json.RawMessage(`[{"id":1},{"id":2}]`)
	page := PageData(data, 33, 2, 16)

	assert.Equal(t, 33, page.TotalItems)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages) // ceil(33/16)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(page.Items))
}

func TestPageData_EmptyAggregate(t *testing.T) {
	// json_agg returns SQL NULL when nothing matched
	page := PageData(nil, 0, 1, 16)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, "[]", string(page.Items))

	page = PageData(json.RawMessage("null"), 0, 1, 16)
	assert.Equal(t, "[]", string(page.Items))
}

func TestPageData_ExactMultiple(t *testing.T) {
	page := PageData(json.RawMessage(`[]`), 32, 1, 16)
	assert.Equal(t, 2, page.TotalPages)
}
