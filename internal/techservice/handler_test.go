package techservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abrabant/brabantapi/internal/common"
)

func setupTestEnvironment(t *testing.T) (*TechnologyService, func() error) {
	db := common.TestDB("file://../../migrations", t)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM technology")
		return err
	}

	return NewTechnologyService(db), cleanup
}

func TestCreateTechnology(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)

	t.Run("valid technology", func(t *testing.T) {
		defer cleanup()

		technology, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go", LogoURI: "/logos/go.svg"})
		assert.NoError(t, err)
		assert.Greater(t, technology.ID, 0)
		assert.Equal(t, "Go", technology.Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		defer cleanup()

		_, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
		assert.NoError(t, err)

		_, err = s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("empty name", func(t *testing.T) {
		defer cleanup()

		_, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: ""})
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"name": "must be provided"}}, err)
	})
}

func TestEditTechnology(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)

	t.Run("patch returns the updated row", func(t *testing.T) {
		defer cleanup()

		created, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
		assert.NoError(t, err)

		updated, err := s.Edit(context.Background(), created.ID, &EditTechnologyRequest{LogoURI: common.Some("/logos/go.svg")})
		assert.NoError(t, err)
		assert.Equal(t, "Go", updated.Name)
		assert.Equal(t, "/logos/go.svg", updated.LogoURI)
	})

	t.Run("empty patch returns the current row", func(t *testing.T) {
		defer cleanup()

		created, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
		assert.NoError(t, err)

		current, err := s.Edit(context.Background(), created.ID, &EditTechnologyRequest{})
		assert.NoError(t, err)
		assert.Equal(t, created.ID, current.ID)
		assert.Equal(t, "Go", current.Name)
	})

	t.Run("missing technology", func(t *testing.T) {
		defer cleanup()

		_, err := s.Edit(context.Background(), 999999, &EditTechnologyRequest{Name: common.Some("Rust")})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestFindTechnology(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	created, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
	assert.NoError(t, err)

	byID, err := s.FindByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Go", byID.Name)

	byName, err := s.FindByName(context.Background(), "Go")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = s.FindByName(context.Background(), "Rust")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListTechnologies(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	for _, name := range []string{"PostgreSQL", "Go", "Docker"} {
		_, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: name})
		assert.NoError(t, err)
	}

	technologies, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, technologies, 3)

	// listing is ordered by name
	assert.Equal(t, "Docker", technologies[0].Name)
	assert.Equal(t, "Go", technologies[1].Name)
	assert.Equal(t, "PostgreSQL", technologies[2].Name)
}

func TestDeleteTechnology(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	created, err := s.Create(context.Background(), &CreateTechnologyRequest{Name: "Go"})
	assert.NoError(t, err)

	deleted, err := s.Delete(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.Delete(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}
