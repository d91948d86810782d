package http

import (
	"time"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	User         userResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type tokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type authorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type postResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Author      authorResponse `json:"author"`
	Status      string         `json:"status"`
	Tags        []string       `json:"tags"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
}

type postsPageResponse struct {
	Posts       []postResponse `json:"posts"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalPosts  int            `json:"totalPosts"`
}

type commentResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Author    authorResponse `json:"author"`
	PostID    string         `json:"postId"`
	CreatedAt time.Time      `json:"createdAt"`
}

type commentsPageResponse struct {
	Comments      []commentResponse `json:"comments"`
	CurrentPage   int               `json:"currentPage"`
	TotalPages    int               `json:"totalPages"`
	TotalComments int               `json:"totalComments"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newAuthResponse(u *models.User, pair *services.TokenPair) authResponse {
	return authResponse{
		User:         userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)},
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func newAuthorResponse(a models.Author) authorResponse {
	return authorResponse{ID: a.ID, Name: a.Name, Email: a.Email}
}

func newPostResponse(p *models.Post) postResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Author:      newAuthorResponse(p.Author),
		Status:      string(p.Status),
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}
}

func newPostsPageResponse(page *models.PostPage) postsPageResponse {
	posts := make([]postResponse, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, newPostResponse(p))
	}
	return postsPageResponse{
		Posts:       posts,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalPosts:  page.Total,
	}
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Author:    newAuthorResponse(c.Author),
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
	}
}

func newCommentsPageResponse(page *models.CommentPage) commentsPageResponse {
	comments := make([]commentResponse, 0, len(page.Comments))
	for _, c := range page.Comments {
		comments = append(comments, newCommentResponse(c))
	}
	return commentsPageResponse{
		Comments:      comments,
		CurrentPage:   page.CurrentPage,
		TotalPages:    page.TotalPages,
		TotalComments: page.Total,
	}
}
