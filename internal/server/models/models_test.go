package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	for _, bad := range []string{"", "Admin", "moderator", "root"} {
		_, err := ParseRole(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("published")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}

func TestPost_SetStatus(t *testing.T) {
	t0 := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &Post{Status: StatusDraft}

	p.SetStatus(StatusPublished, t0)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, StatusPublished, p.Status)
	assert.Equal(t, t0, *p.PublishedAt)
	assert.Equal(t, t0, p.UpdatedAt)

	t1 := t0.Add(time.Hour)
	p.SetStatus(StatusPublished, t1)
	assert.Equal(t, t1, *p.PublishedAt, "republishing refreshes publishedAt")

	t2 := t1.Add(time.Hour)
	p.SetStatus(StatusDraft, t2)
	assert.Equal(t, StatusDraft, p.Status)
	assert.Nil(t, p.PublishedAt)
	assert.Equal(t, t2, p.UpdatedAt)
}

func TestNewListQuery(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		max       int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", wantPage: 1, wantLimit: 10},
		{name: "explicit", page: "3", limit: "25", max: 100, wantPage: 3, wantLimit: 25},
		{name: "garbage", page: "abc", limit: "x", max: 100, wantPage: 1, wantLimit: 10},
		{name: "zero and negative", page: "0", limit: "-5", max: 100, wantPage: 1, wantLimit: 10},
		{name: "capped", page: "1", limit: "1000", max: 100, wantPage: 1, wantLimit: 100},
		{name: "no cap", page: "1", limit: "1000", max: 0, wantPage: 1, wantLimit: 1000},
		{name: "page beyond int range", page: "99999999999999999999", limit: "10", max: 100, wantPage: math.MaxInt, wantLimit: 10},
		{name: "limit beyond int range", page: "1", limit: "99999999999999999999", max: 100, wantPage: 1, wantLimit: 100},
		{name: "negative beyond int range", page: "-99999999999999999999", max: 100, wantPage: 1, wantLimit: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewListQuery(tt.page, tt.limit, tt.max)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
		})
	}
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, ListQuery{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 7, ListQuery{Page: 8, Limit: 1}.Offset())
}

func TestListQuery_PastEnd(t *testing.T) {
	assert.False(t, ListQuery{Page: 1, Limit: 10}.PastEnd())
	assert.False(t, ListQuery{Page: 1_000_000, Limit: 100}.PastEnd())

	q := NewListQuery("9223372036854775807", "10", 100)
	assert.True(t, q.PastEnd())
	assert.Equal(t, math.MaxInt, q.Offset())

	q = NewListQuery("99999999999999999999", "1", 100)
	assert.False(t, q.PastEnd(), "offset MaxInt-1 still fits")
	assert.GreaterOrEqual(t, q.Offset(), 0)
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		total, limit, wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 7, 14},
	}
	for _, tt := range tests {
		info := NewPageInfo(ListQuery{Page: 2, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.wantPages, info.TotalPages, "total=%d limit=%d", tt.total, tt.limit)
		assert.Equal(t, tt.total, info.Total)
		assert.Equal(t, 2, info.CurrentPage)
	}
}
