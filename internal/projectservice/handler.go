package projectservice

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/abrabant/brabantapi/internal/common"
)

func NewProjectService(db *sql.DB, logger *slog.Logger) *ProjectService {
	return &ProjectService{m: newProjectModel(db), logger: logger}
}

type CreateProjectRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Content       string         `json:"content"`
	CoverURI      string         `json:"cover_uri"`
	StartTs       time.Time      `json:"start_ts"`
	EndTs         *time.Time     `json:"end_ts"`
	TechnologyIDs []int          `json:"technology_ids"`
	Privacy       common.Privacy `json:"privacy"`
}

// Create persists a new project and returns its id. The string id is
// derived from the name; privacy defaults to PRIVATE unless overridden.
// Technology association is best-effort relative to the primary row.
func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (int, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	validateDescription(v, req.Description)
	validateContent(v, req.Content)
	if req.Privacy != "" {
		validatePrivacy(v, req.Privacy)
	}
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	p := Project{
		StringID:    common.Slugify(req.Name),
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		CoverURI:    req.CoverURI,
		StartTs:     req.StartTs,
		EndTs:       req.EndTs,
		Privacy:     req.Privacy,
	}
	if p.StartTs.IsZero() {
		p.StartTs = time.Now()
	}
	if p.Privacy == "" {
		p.Privacy = common.PrivacyPrivate
	}

	if err := s.m.insert(ctx, &p); err != nil {
		return 0, err
	}

	if len(req.TechnologyIDs) > 0 {
		if err := s.m.syncTechnologies(ctx, p.ID, req.TechnologyIDs); err != nil {
			s.logger.Error("project technology sync incomplete", slog.Int("project_id", p.ID), slog.String("error", err.Error()))
		}
	}

	return p.ID, nil
}

type EditProjectRequest struct {
	Name          common.Optional[string]    `json:"name"`
	Description   common.Optional[string]    `json:"description"`
	Content       common.Optional[string]    `json:"content"`
	CoverURI      common.Optional[string]    `json:"cover_uri"`
	StartTs       common.Optional[time.Time] `json:"start_ts"`
	EndTs         common.Optional[time.Time] `json:"end_ts"`
	Privacy       common.Optional[string]    `json:"privacy"`
	TechnologyIDs common.Optional[[]int]     `json:"technology_ids"`
}

// Edit applies a sparse field set to an existing project. A name change
// recomputes the derived string id; a supplied technology set is
// synchronized whether or not any scalar column changed.
func (s *ProjectService) Edit(ctx context.Context, id int, req *EditProjectRequest) error {
	v := common.NewValidator()
	validateInt(v, id, "project_id")
	if name, ok := req.Name.Value(); ok {
		validateName(v, name)
	} else if req.Name.IsNull() {
		v.AddError("name", "must not be null")
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

	if technologyIDs, ok := req.TechnologyIDs.Value(); ok {
		if err := s.m.syncTechnologies(ctx, id, technologyIDs); err != nil {
			s.logger.Error("project technology sync incomplete", slog.Int("project_id", id), slog.String("error", err.Error()))
		}
	}

	b := common.NewPatchBuilder()
	b.Add("name", req.Name)
	if name, ok := req.Name.Value(); ok {
		b.Set("string_id", common.Slugify(name))
	}
	b.Add("description", req.Description)
	b.Add("content", req.Content)
	b.Add("cover_uri", req.CoverURI)
	b.Add("start_ts", req.StartTs)
	b.Add("end_ts", req.EndTs)
	b.Add("privacy", req.Privacy)

	if b.Empty() {
		return nil
	}

	return s.m.update(ctx, id, b)
}

func (s *ProjectService) FindByID(ctx context.Context, id int, publicOnly bool) (*Project, error) {
	v := common.NewValidator()
	validateInt(v, id, "project_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "project_id", id, publicOnly)
}

func (s *ProjectService) FindByName(ctx context.Context, name string, publicOnly bool) (*Project, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "name", name, publicOnly)
}

func (s *ProjectService) FindByStringID(ctx context.Context, stringID string, publicOnly bool) (*Project, error) {
	v := common.NewValidator()
	v.Check(stringID != "", "string_id", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "string_id", stringID, publicOnly)
}

// List returns previews newest-first by start timestamp. Default limit is
// 100.
func (s *ProjectService) List(ctx context.Context, publicOnly bool, limit int) ([]ProjectPreview, error) {
	if limit < 1 {
		limit = 100
	}

	return s.m.getProjects(ctx, publicOnly, limit)
}

// Delete removes a project and, through the schema, its association rows.
// Deleting a missing id reports false rather than an error.
func (s *ProjectService) Delete(ctx context.Context, id int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "project_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.delete(ctx, id)
}
