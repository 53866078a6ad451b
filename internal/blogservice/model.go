package blogservice

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
	ErrAuthorNotFound = errors.New("author_id does not exist")
)

func newBlogpostModel(db *sql.DB) *BlogpostModel {
	m := &BlogpostModel{db: db}
	m.tagSync = common.NewAssocSyncer(db, "blogpost_blogpost_tag", "blogpost_id", "blogpost_tag_id", m.lookupOrCreateTag)
	return m
}

func (m *BlogpostModel) insert(ctx context.Context, b *Blogpost) error {
	query := `
		INSERT INTO blogpost (string_id, author_id, title, description, content, cover_image_path, release_ts, last_edit_ts, privacy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING blogpost_id`

	args := []any{
		b.StringID,
		b.AuthorID,
		b.Title,
		b.Description,
		b.Content,
		b.CoverImagePath,
		b.ReleaseTs,
		b.LastEditTs,
		b.Privacy,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "blogpost_author_id_fkey"):
			return ErrAuthorNotFound
		default:
			return err
		}
	}

	return nil
}

// getBy fetches a single blogpost by a fixed lookup column, joining the
// author row. The privacy filter is part of the query itself so that a
// private row is indistinguishable from a missing one.
func (m *BlogpostModel) getBy(ctx context.Context, column string, value any, publicOnly bool) (*Blogpost, error) {
	query := fmt.Sprintf(`
		SELECT b.blogpost_id, b.string_id, b.title, b.description, b.content,
			b.author_id, u.username, COALESCE(u.picture_uri, ''),
			b.release_ts, b.last_edit_ts, COALESCE(b.cover_image_path, ''), b.privacy
		FROM blogpost b
		INNER JOIN user_account u ON u.user_id = b.author_id
		WHERE b.%s = $1`, column)
	if publicOnly {
		query += ` AND b.privacy = 'PUBLIC'`
	}

	var b Blogpost
	err := m.db.QueryRowContext(ctx, query, value).Scan(
		&b.ID,
		&b.StringID,
		&b.Title,
		&b.Description,
		&b.Content,
		&b.AuthorID,
		&b.AuthorUsername,
		&b.AuthorPictureURI,
		&b.ReleaseTs,
		&b.LastEditTs,
		&b.CoverImagePath,
		&b.Privacy,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	b.EstimatedReadingTime = estimateReadingTime(b.Title + b.Description + b.Content)

	tags, err := m.getTags(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Tags = tags

	return &b, nil
}

// getBlogposts lists newest-first by release timestamp, bounded by limit.
func (m *BlogpostModel) getBlogposts(ctx context.Context, publicOnly bool, limit int) ([]BlogpostPreview, error) {
	query := `
		SELECT b.blogpost_id, b.string_id, b.title, b.description, b.content,
			b.author_id, u.username, COALESCE(u.picture_uri, ''),
			b.release_ts, b.last_edit_ts, COALESCE(b.cover_image_path, '')
		FROM blogpost b
		INNER JOIN user_account u ON u.user_id = b.author_id`
	if publicOnly {
		query += ` WHERE b.privacy = 'PUBLIC'`
	}
	query += `
		ORDER BY b.release_ts DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogpostPreview
	for rows.Next() {
		var p BlogpostPreview
		var content string
		err := rows.Scan(
			&p.ID,
			&p.StringID,
			&p.Title,
			&p.Description,
			&content,
			&p.AuthorID,
			&p.AuthorUsername,
			&p.AuthorPictureURI,
			&p.ReleaseTs,
			&p.LastEditTs,
			&p.CoverImagePath,
		)
		if err != nil {
			return nil, err
		}

		p.EstimatedReadingTime = estimateReadingTime(p.Title + p.Description + content)
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := m.getTags(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Tags = tags
	}

	return posts, nil
}

func (m *BlogpostModel) update(ctx context.Context, id int, b *common.PatchBuilder) error {
	query := fmt.Sprintf("UPDATE blogpost %s WHERE blogpost_id = $%d", b.Clause(), b.NextArg())
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

func (m *BlogpostModel) delete(ctx context.Context, id int) (bool, error) {
	query := `
		DELETE FROM blogpost
		WHERE blogpost_id = $1`

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

// hasAuthorPostWithTitle implements the duplicate-title guard: one author
// cannot own two posts whose titles differ only by case.
func (m *BlogpostModel) hasAuthorPostWithTitle(ctx context.Context, authorID int, title string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM blogpost
		WHERE author_id = $1 AND title ILIKE $2`

	var count int
	err := m.db.QueryRowContext(ctx, query, authorID, title).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// lookupOrCreateTag resolves a tag label to its surrogate id, creating the
// tag row lazily on first use.
func (m *BlogpostModel) lookupOrCreateTag(ctx context.Context, tag string) (int, error) {
	var id int
	err := m.db.QueryRowContext(ctx, `SELECT blogpost_tag_id FROM blogpost_tag WHERE tag = $1`, tag).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = m.db.QueryRowContext(ctx, `INSERT INTO blogpost_tag (tag) VALUES ($1) RETURNING blogpost_tag_id`, tag).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// syncTags replaces the tag set of a blogpost. Tags are stored upper-case
// so near-identical labels differing only by case collapse into one row.
func (m *BlogpostModel) syncTags(ctx context.Context, blogpostID int, tags []string) error {
	normalized := make([]string, len(tags))
	for i, tag := range tags {
		normalized[i] = strings.ToUpper(tag)
	}

	return m.tagSync.Sync(ctx, blogpostID, normalized)
}

func (m *BlogpostModel) getTags(ctx context.Context, blogpostID int) ([]string, error) {
	query := `
		SELECT tag
		FROM blogpost_blogpost_tag
		INNER JOIN blogpost_tag ON blogpost_tag.blogpost_tag_id = blogpost_blogpost_tag.blogpost_tag_id
		WHERE blogpost_id = $1`

	rows, err := m.db.QueryContext(ctx, query, blogpostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (m *BlogpostModel) listTags(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT tag FROM blogpost_tag ORDER BY tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

// Author lookups used by the markdown ingestion pipeline. These hit the
// user_account table directly: the pipeline only needs existence.
func (m *BlogpostModel) userIDByID(ctx context.Context, id int) (int, error) {
	var userID int
	err := m.db.QueryRowContext(ctx, `SELECT user_id FROM user_account WHERE user_id = $1`, id).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRecordNotFound
	}
	return userID, err
}

func (m *BlogpostModel) userIDByEmail(ctx context.Context, email string) (int, error) {
	var userID int
	err := m.db.QueryRowContext(ctx, `SELECT user_id FROM user_account WHERE email = $1`, email).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRecordNotFound
	}
	return userID, err
}
