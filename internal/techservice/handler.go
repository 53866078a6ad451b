package techservice

import (
	"context"
	"database/sql"

	"github.com/abrabant/brabantapi/internal/common"
)

func NewTechnologyService(db *sql.DB) *TechnologyService {
	return &TechnologyService{m: newTechnologyModel(db)}
}

type CreateTechnologyRequest struct {
	Name    string `json:"name"`
	LogoURI string `json:"logo_uri"`
}

func (s *TechnologyService) Create(ctx context.Context, req *CreateTechnologyRequest) (*Technology, error) {
	v := common.NewValidator()
	validateName(v, req.Name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t := Technology{Name: req.Name, LogoURI: req.LogoURI}
	if err := s.m.insert(ctx, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

type EditTechnologyRequest struct {
	Name    common.Optional[string] `json:"name"`
	LogoURI common.Optional[string] `json:"logo_uri"`
}

// Edit patches name and logo URI, returning the updated row.
func (s *TechnologyService) Edit(ctx context.Context, id int, req *EditTechnologyRequest) (*Technology, error) {
	v := common.NewValidator()
	validateInt(v, id, "technology_id")
	if name, ok := req.Name.Value(); ok {
		validateName(v, name)
	} else if req.Name.IsNull() {
		v.AddError("name", "must not be null")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	b := common.NewPatchBuilder()
	b.Add("name", req.Name)
	b.Add("logo_uri", req.LogoURI)

	if b.Empty() {
		return s.m.getBy(ctx, "technology_id", id)
	}

	return s.m.update(ctx, id, b)
}

func (s *TechnologyService) FindByID(ctx context.Context, id int) (*Technology, error) {
	v := common.NewValidator()
	validateInt(v, id, "technology_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "technology_id", id)
}

func (s *TechnologyService) FindByName(ctx context.Context, name string) (*Technology, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBy(ctx, "name", name)
}

func (s *TechnologyService) List(ctx context.Context) ([]Technology, error) {
	return s.m.getAll(ctx)
}

// Delete removes a technology. Returns false for a missing id.
func (s *TechnologyService) Delete(ctx context.Context, id int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "technology_id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

func validateName(v *common.Validator, name string) {
	v.Check(name != "", "name", "must be provided")
	v.Check(v.CheckStringLength(name, 1, 50), "name", "must be between 1 and 50 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
