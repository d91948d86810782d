package models

import (
	"fmt"
	"time"
)

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (PostStatus, error) {
	st := PostStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

type Post struct {
	ID          string
	Title       string
	Content     string
	Author      Author
	Status      PostStatus
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time
}

// SetStatus moves the post to status and keeps PublishedAt in step:
// publishing stamps it with now (even when already published), drafting
// clears it.
func (p *Post) SetStatus(status PostStatus, now time.Time) {
	p.Status = status
	if status == StatusPublished {
		t := now
		p.PublishedAt = &t
	} else {
		p.PublishedAt = nil
	}
	p.UpdatedAt = now
}

// Touch records a mutation.
func (p *Post) Touch(now time.Time) {
	p.UpdatedAt = now
}
