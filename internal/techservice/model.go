package techservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abrabant/brabantapi/internal/common"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateName  = errors.New("duplicate technology name")
)

func newTechnologyModel(db *sql.DB) *TechnologyModel {
	return &TechnologyModel{db: db}
}

func (m *TechnologyModel) insert(ctx context.Context, t *Technology) error {
	query := `
		INSERT INTO technology (name, logo_uri)
		VALUES ($1, $2)
		RETURNING technology_id`

	err := m.db.QueryRowContext(ctx, query, t.Name, t.LogoURI).Scan(&t.ID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "technology_name_key"):
			return ErrDuplicateName
		default:
			return err
		}
	}

	return nil
}

func (m *TechnologyModel) getBy(ctx context.Context, column string, value any) (*Technology, error) {
	query := fmt.Sprintf(`
		SELECT technology_id, name, COALESCE(logo_uri, '')
		FROM technology
		WHERE %s = $1`, column)

	var t Technology
	err := m.db.QueryRowContext(ctx, query, value).Scan(&t.ID, &t.Name, &t.LogoURI)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &t, nil
}

func (m *TechnologyModel) getAll(ctx context.Context) ([]Technology, error) {
	query := `
		SELECT technology_id, name, COALESCE(logo_uri, '')
		FROM technology
		ORDER BY name`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var technologies []Technology
	for rows.Next() {
		var t Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.LogoURI); err != nil {
			return nil, err
		}
		technologies = append(technologies, t)
	}

	return technologies, rows.Err()
}

func (m *TechnologyModel) update(ctx context.Context, id int, b *common.PatchBuilder) (*Technology, error) {
	query := fmt.Sprintf(`
		UPDATE technology %s
		WHERE technology_id = $%d
		RETURNING technology_id, name, COALESCE(logo_uri, '')`, b.Clause(), b.NextArg())
	args := append(b.Args(), id)

	var t Technology
	err := m.db.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name, &t.LogoURI)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		case strings.Contains(err.Error(), "technology_name_key"):
			return nil, ErrDuplicateName
		default:
			return nil, err
		}
	}

	return &t, nil
}

func (m *TechnologyModel) delete(ctx context.Context, id int) (bool, error) {
	query := `
		DELETE FROM technology
		WHERE technology_id = $1`

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
