package blogservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/abrabant/brabantapi/internal/common"
)

func NewBlogpostService(db *sql.DB, logger *slog.Logger) *BlogpostService {
	return &BlogpostService{m: newBlogpostModel(db), logger: logger}
}

type CreateBlogpostRequest struct {
	AuthorID       int            `json:"author_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Content        string         `json:"content"`
	CoverImagePath string         `json:"cover_image_path"`
	ReleaseTs      time.Time      `json:"release_ts"`
	LastEditTs     time.Time      `json:"last_edit_ts"`
	Tags           []string       `json:"tags"`
	Privacy        common.Privacy `json:"privacy"`
}

// Create persists a new blogpost and returns its id. The string id is
// derived from the title; privacy defaults to PRIVATE unless overridden.
// Tag association is best-effort relative to the primary row: a partial
// sync is logged, not rolled back.
func (s *BlogpostService) Create(ctx context.Context, req *CreateBlogpostRequest) (int, error) {
	v := common.NewValidator()
	validateInt(v, req.AuthorID, "author_id")
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateContent(v, req.Content)
	validateCoverImagePath(v, req.CoverImagePath)
	if req.Privacy != "" {
		validatePrivacy(v, req.Privacy)
	}
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	duplicate, err := s.m.hasAuthorPostWithTitle(ctx, req.AuthorID, req.Title)
	if err != nil {
		return 0, err
	}
	if duplicate {
		return 0, common.ConflictError{Field: "title", Message: "this author already has a blogpost with this title"}
	}

	b := Blogpost{
		StringID:       common.Slugify(req.Title),
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		AuthorID:       req.AuthorID,
		CoverImagePath: req.CoverImagePath,
		ReleaseTs:      req.ReleaseTs,
		LastEditTs:     req.LastEditTs,
		Privacy:        req.Privacy,
	}

	return s.persist(ctx, &b, req.Tags)
}

// persist writes the primary row and then synchronizes tags. Shared by
// Create and the markdown ingestion pipeline, both of which have already
// validated their input and applied the duplicate-title guard.
func (s *BlogpostService) persist(ctx context.Context, b *Blogpost, tags []string) (int, error) {
	now := time.Now()
	if b.ReleaseTs.IsZero() {
		b.ReleaseTs = now
	}
	if b.LastEditTs.IsZero() {
		b.LastEditTs = now
	}
	if b.Privacy == "" {
		b.Privacy = common.PrivacyPrivate
	}

	if err := s.m.insert(ctx, b); err != nil {
		return 0, err
	}

	if len(tags) > 0 {
		if err := s.m.syncTags(ctx, b.ID, tags); err != nil {
			s.logger.Error("blogpost tag sync incomplete", slog.Int("blogpost_id", b.ID), slog.String("error", err.Error()))
		}
	}

	return b.ID, nil
}

type EditBlogpostRequest struct {
	Title          common.Optional[string]   `json:"title"`
	Description    common.Optional[string]   `json:"description"`
	Content        common.Optional[string]   `json:"content"`
	CoverImagePath common.Optional[string]   `json:"cover_image_path"`
	Privacy        common.Optional[string]   `json:"privacy"`
	Tags           common.Optional[[]string] `json:"tags"`
}

// Edit applies a sparse field set to an existing blogpost. Only supplied
// columns are written; a title change recomputes the derived string id.
// Tag synchronization runs whenever a tag set is supplied, whether or not
// any scalar column changed.
func (s *BlogpostService) Edit(ctx context.Context, id int, req *EditBlogpostRequest) error {
	v := common.NewValidator()
	validateInt(v, id, "blogpost_id")
	if title, ok := req.Title.Value(); ok {
		validateTitle(v, title)
	} else if req.Title.IsNull() {
		v.AddError("title", "must not be null")
	}
	if description, ok := req.Description.Value(); ok {
		validateDescription(v, description)
	} else if req.Description.IsNull() {
		v.AddError("description", "must not be null")
	}
	if req.Content.IsNull() {
		v.AddError("content", "must not be null")
	}
	if privacy, ok := req.Privacy.Value(); ok {
		validatePrivacy(v, common.Privacy(privacy))
	} else if req.Privacy.IsNull() {
		v.AddError("privacy", "must not be null")
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	if tags, ok := req.Tags.Value(); ok {
		if err := s.m.syncTags(ctx, id, tags); err != nil {
			s.logger.Error("blogpost tag sync incomplete", slog.Int("blogpost_id", id), slog.String("error", err.Error()))
		}
	}

	b := common.NewPatchBuilder()
	b.Add("title", req.Title)
	if title, ok := req.Title.Value(); ok {
		// the string id is derived from the title, never set directly
		b.Set("string_id", common.Slugify(title))
	}
	b.Add("description", req.Description)
	b.Add("content", req.Content)
	b.Add("cover_image_path", req.CoverImagePath)
	b.Add("privacy", req.Privacy)

	if b.Empty() {
		return nil
	}

	return s.m.update(ctx, id, b)
}

// FindByID returns a blogpost by its numeric id. With publicOnly set, a
// non-public row reads as not found.
func (s *BlogpostService) FindByID(ctx context.Context, id int, publicOnly bool) (*Blogpost, error) {
	v := common.NewValidator()
	validateInt(v, id, "blogpost_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "blogpost_id", id, publicOnly)
}

// FindByStringID returns a blogpost by its derived slug.
func (s *BlogpostService) FindByStringID(ctx context.Context, stringID string, publicOnly bool) (*Blogpost, error) {
	v := common.NewValidator()
	v.Check(stringID != "", "string_id", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "string_id", stringID, publicOnly)
}

// List returns previews newest-first by release timestamp. Default limit
// is 100.
func (s *BlogpostService) List(ctx context.Context, publicOnly bool, limit int) ([]BlogpostPreview, error) {
	if limit < 1 {
		limit = 100
	}

	return s.m.getBlogposts(ctx, publicOnly, limit)
}

// Delete removes a blogpost and, through the schema, its association rows.
// Deleting a missing id reports false rather than an error.
func (s *BlogpostService) Delete(ctx context.Context, id int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "blogpost_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

// ListTags returns every known tag label.
func (s *BlogpostService) ListTags(ctx context.Context) ([]string, error) {
	return s.m.listTags(ctx)
}
