package blogservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/abrabant/brabantapi/internal/common"
)

type Blogpost struct {
	ID                   int            `json:"blogpost_id"`
	StringID             string         `json:"string_id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	AuthorID             int            `json:"author_id"`
	AuthorUsername       string         `json:"author_username"`
	AuthorPictureURI     string         `json:"author_picture_uri,omitempty"`
	// Content is stored in Markdown format.
	Content              string         `json:"content"`
	ReleaseTs            time.Time      `json:"release_ts"`
	LastEditTs           time.Time      `json:"last_edit_ts"`
	CoverImagePath       string         `json:"cover_image_path,omitempty"`
	EstimatedReadingTime int            `json:"estimated_reading_time"`
	Tags                 []string       `json:"tags"`
	Privacy              common.Privacy `json:"privacy"`
}

// BlogpostPreview is the listing projection: everything a card view needs,
// without the full content body.
type BlogpostPreview struct {
	ID                   int       `json:"blogpost_id"`
	StringID             string    `json:"string_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	AuthorID             int       `json:"author_id"`
	AuthorUsername       string    `json:"author_username"`
	AuthorPictureURI     string    `json:"author_picture_uri,omitempty"`
	ReleaseTs            time.Time `json:"release_ts"`
	LastEditTs           time.Time `json:"last_edit_ts"`
	CoverImagePath       string    `json:"cover_image_path,omitempty"`
	EstimatedReadingTime int       `json:"estimated_reading_time"`
	Tags                 []string  `json:"tags"`
}

// FieldError is one entry of the markdown ingestion report. Field is empty
// for document-level problems such as unparseable front matter.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type BlogpostModel struct {
	db      *sql.DB
	tagSync *common.AssocSyncer[string]
}

type BlogpostService struct {
	m      *BlogpostModel
	logger *slog.Logger
}
