package models

import "time"

type Comment struct {
	ID        string
	Content   string
	Author    Author
	PostID    string
	CreatedAt time.Time
}
