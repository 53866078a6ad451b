package techservice

import "database/sql"

// Technology is a reusable label linked to projects many-to-many. Rows are
// never deleted as a side effect of project edits, only unlinked.
type Technology struct {
	ID      int    `json:"technology_id"`
	Name    string `json:"name"`
	LogoURI string `json:"logo_uri,omitempty"`
}

type TechnologyModel struct {
	db *sql.DB
}

type TechnologyService struct {
	m *TechnologyModel
}
