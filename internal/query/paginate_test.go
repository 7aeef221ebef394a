package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/proposals/internal/domain"
	"github.com/stretchr/testify/assert"
)

func many(n int) []*domain.SavedProposal {
	out := make([]*domain.SavedProposal, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rec(fmt.Sprintf("p%02d", i), now.Add(-time.Duration(i)*time.Hour), 1, domain.KindGeneric))
	}
	return out
}

func TestPaginate(t *testing.T) {
	records := many(23)

	tests := []struct {
		name      string
		page      int
		wantNum   int
		wantFirst string
		wantLen   int
	}{
		{"first", 1, 1, "p00", 10},
		{"middle", 2, 2, "p10", 10},
		{"last partial", 3, 3, "p20", 3},
		{"past end clamps", 9, 3, "p20", 3},
		{"zero clamps", 0, 1, "p00", 10},
		{"negative clamps", -4, 1, "p00", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(records, tt.page, 10)
			assert.Equal(t, tt.wantNum, p.Number)
			assert.Equal(t, 3, p.TotalPages)
			assert.Equal(t, 23, p.TotalItems)
			assert.Len(t, p.Items, tt.wantLen)
			assert.Equal(t, tt.wantFirst, p.Items[0].ID)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 3, 10)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Zero(t, p.TotalItems)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrev())
}

func TestPaginate_DefaultSize(t *testing.T) {
	p := Paginate(many(15), 1, 0)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Len(t, p.Items, DefaultPageSize)
	assert.True(t, p.HasNext())
}

func TestPaginate_ExactMultiple(t *testing.T) {
	p := Paginate(many(20), 2, 10)
	assert.Equal(t, 2, p.TotalPages)
	assert.Len(t, p.Items, 10)
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrev())
}
