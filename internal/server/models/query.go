package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListQuery carries the pagination window shared by every list endpoint.
type ListQuery struct {
	Page  int
	Limit int
}

// NewListQuery parses raw page/limit strings. Missing, non-numeric or
// non-positive values fall back to the defaults; positive values too large
// for an int saturate at math.MaxInt. Limit is capped at maxLimit when
// maxLimit > 0.
func NewListQuery(rawPage, rawLimit string, maxLimit int) ListQuery {
	q := ListQuery{
		Page:  positiveOr(rawPage, DefaultPage),
		Limit: positiveOr(rawLimit, DefaultPageSize),
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

func positiveOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return def
	}
	return n
}

// PastEnd reports whether the window starts beyond any representable row
// offset. Such a page is always empty.
func (q ListQuery) PastEnd() bool {
	return q.Limit > 0 && q.Page-1 > math.MaxInt/q.Limit
}

// Offset is the number of matching rows to skip. It saturates at
// math.MaxInt instead of overflowing.
func (q ListQuery) Offset() int {
	if q.PastEnd() {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// PostQuery filters the post listing. A nil Status and an empty Search or
// AuthorID mean "no restriction".
type PostQuery struct {
	ListQuery
	Search   string
	Status   *PostStatus
	AuthorID string
}

// PageInfo describes one page of a result set.
type PageInfo struct {
	CurrentPage int
	TotalPages  int
	Total       int
}

func NewPageInfo(q ListQuery, total int) PageInfo {
	pages := 0
	if q.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(q.Limit)))
	}
	return PageInfo{CurrentPage: q.Page, TotalPages: pages, Total: total}
}

type PostPage struct {
	Posts []*Post
	PageInfo
}

type CommentPage struct {
	Comments []*Comment
	PageInfo
}
