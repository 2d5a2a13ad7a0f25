package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

type mockDesignationRepo struct {
	designations map[string]*models.Designation
}

func (m *mockDesignationRepo) List(ctx context.Context) ([]models.Designation, error) {
	var out []models.Designation
	for _, d := range m.designations {
		out = append(out, *d)
	}
	return out, nil
}

func (m *mockDesignationRepo) FindByID(ctx context.Context, id string) (*models.Designation, error) {
	if d, ok := m.designations[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDesignationRepo) Create(ctx context.Context, d *models.Designation) error {
	if m.designations == nil {
		m.designations = make(map[string]*models.Designation)
	}
	if d.ID == "" {
		d.ID = "generated-desig"
	}
	cp := *d
	m.designations[d.ID] = &cp
	return nil
}

func (m *mockDesignationRepo) Update(ctx context.Context, d *models.Designation) error {
	cp := *d
	m.designations[d.ID] = &cp
	return nil
}

func (m *mockDesignationRepo) Delete(ctx context.Context, id string) error {
	delete(m.designations, id)
	return nil
}

type mockDesignationUserCounter struct {
	count int
}

func (m *mockDesignationUserCounter) CountActiveByDesignation(ctx context.Context, designationID string) (int, error) {
	return m.count, nil
}

func TestDesignationServiceDeleteBlockedByActiveUsers(t *testing.T) {
	repo := &mockDesignationRepo{designations: map[string]*models.Designation{
		"desig-1": {ID: "desig-1", Title: "Senior Trainer"},
	}}
	svc := NewDesignationService(repo, &mockDesignationUserCounter{count: 2}, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "desig-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReferenced.Code, appErrors.FromError(err).Code)
	assert.Contains(t, repo.designations, "desig-1")
}

func TestDesignationServiceDeleteWithOnlyDeactivatedHolders(t *testing.T) {
	repo := &mockDesignationRepo{designations: map[string]*models.Designation{
		"desig-1": {ID: "desig-1", Title: "Counselor"},
	}}
	// deactivated accounts do not count against removal
	svc := NewDesignationService(repo, &mockDesignationUserCounter{count: 0}, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "desig-1")
	require.NoError(t, err)
	assert.NotContains(t, repo.designations, "desig-1")
}

func TestDesignationServiceDeleteUnknown(t *testing.T) {
	svc := NewDesignationService(&mockDesignationRepo{}, &mockDesignationUserCounter{}, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDesignationServiceUpdateRenames(t *testing.T) {
	repo := &mockDesignationRepo{designations: map[string]*models.Designation{
		"desig-1": {ID: "desig-1", Title: "Trainer"},
	}}
	svc := NewDesignationService(repo, &mockDesignationUserCounter{}, validator.New(), zap.NewNop())

	d, err := svc.Update(context.Background(), "desig-1", DesignationRequest{Title: "Lead Trainer"})
	require.NoError(t, err)
	assert.Equal(t, "Lead Trainer", d.Title)
	assert.Equal(t, "Lead Trainer", repo.designations["desig-1"].Title)
}
