package projectservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abrabant/brabantapi/internal/common"
	"github.com/abrabant/brabantapi/internal/techservice"
)

var ErrRecordNotFound = errors.New("record not found")

func newProjectModel(db *sql.DB) *ProjectModel {
	m := &ProjectModel{db: db}
	// technologies arrive as existing ids, so resolution is the identity;
	// an unknown id surfaces as a foreign-key violation on insert.
	m.techSync = common.NewAssocSyncer(db, "project_technology", "project_id", "technology_id",
		func(ctx context.Context, id int) (int, error) { return id, nil })
	return m
}

func (m *ProjectModel) insert(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO project (string_id, name, description, content, cover_uri, start_ts, end_ts, privacy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING project_id`

	args := []any{
		p.StringID,
		p.Name,
		p.Description,
		p.Content,
		p.CoverURI,
		p.StartTs,
		p.EndTs,
		p.Privacy,
	}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

func (m *ProjectModel) getBy(ctx context.Context, column string, value any, publicOnly bool) (*Project, error) {
	query := fmt.Sprintf(`
		SELECT project_id, string_id, name, description, content,
			COALESCE(cover_uri, ''), start_ts, end_ts, privacy
		FROM project
		WHERE %s = $1`, column)
	if publicOnly {
		query += ` AND privacy = 'PUBLIC'`
	}

	var p Project
	err := m.db.QueryRowContext(ctx, query, value).Scan(
		&p.ID,
		&p.StringID,
		&p.Name,
		&p.Description,
		&p.Content,
		&p.CoverURI,
		&p.StartTs,
		&p.EndTs,
		&p.Privacy,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	technologies, err := m.getTechnologies(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Technologies = technologies

	return &p, nil
}

// getProjects lists newest-first by start timestamp, bounded by limit.
func (m *ProjectModel) getProjects(ctx context.Context, publicOnly bool, limit int) ([]ProjectPreview, error) {
	query := `
		SELECT project_id, string_id, name, description,
			COALESCE(cover_uri, ''), start_ts, end_ts
		FROM project`
	if publicOnly {
		query += ` WHERE privacy = 'PUBLIC'`
	}
	query += `
		ORDER BY start_ts DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectPreview
	for rows.Next() {
		var p ProjectPreview
		err := rows.Scan(&p.ID, &p.StringID, &p.Name, &p.Description, &p.CoverURI, &p.StartTs, &p.EndTs)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		technologies, err := m.getTechnologies(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Technologies = technologies
	}

	return projects, nil
}

func (m *ProjectModel) update(ctx context.Context, id int, b *common.PatchBuilder) error {
	query := fmt.Sprintf("UPDATE project %s WHERE project_id = $%d", b.Clause(), b.NextArg())
	args := append(b.Args(), id)

	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (m *ProjectModel) delete(ctx context.Context, id int) (bool, error) {
	query := `
		DELETE FROM project
		WHERE project_id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (m *ProjectModel) syncTechnologies(ctx context.Context, projectID int, technologyIDs []int) error {
	return m.techSync.Sync(ctx, projectID, technologyIDs)
}

func (m *ProjectModel) getTechnologies(ctx context.Context, projectID int) ([]techservice.Technology, error) {
	query := `
		SELECT technology.technology_id, technology.name, COALESCE(technology.logo_uri, '')
		FROM project_technology
		INNER JOIN technology ON project_technology.technology_id = technology.technology_id
		WHERE project_id = $1`

	rows, err := m.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	technologies := []techservice.Technology{}
	for rows.Next() {
		var t techservice.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.LogoURI); err != nil {
			return nil, err
		}
		technologies = append(technologies, t)
	}

	return technologies, rows.Err()
}
