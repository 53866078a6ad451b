package projectservice

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/abrabant/brabantapi/internal/common"
	"github.com/abrabant/brabantapi/internal/techservice"
)

type Project struct {
	ID           int                      `json:"project_id"`
	StringID     string                   `json:"string_id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Content      string                   `json:"content"`
	CoverURI     string                   `json:"cover_uri,omitempty"`
	StartTs      time.Time                `json:"start_ts"`
	EndTs        *time.Time               `json:"end_ts,omitempty"`
	Technologies []techservice.Technology `json:"technologies"`
	Privacy      common.Privacy           `json:"privacy"`
}

// ProjectPreview is the listing projection, without the content body.
type ProjectPreview struct {
	ID           int                      `json:"project_id"`
	StringID     string                   `json:"string_id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	CoverURI     string                   `json:"cover_uri,omitempty"`
	StartTs      time.Time                `json:"start_ts"`
	EndTs        *time.Time               `json:"end_ts,omitempty"`
	Technologies []techservice.Technology `json:"technologies"`
}

type ProjectModel struct {
	db       *sql.DB
	techSync *common.AssocSyncer[int]
}

type ProjectService struct {
	m      *ProjectModel
	logger *slog.Logger
}
