package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	Seed(s)
	return s
}

func TestDeleteDesignationReferencedByActiveUser(t *testing.T) {
	s := seeded(t)
	before := len(s.Designations())

	err := s.DeleteDesignation("desig-2") // carried by active user-2
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrReferenced.Code, appErr.Code)
	assert.Len(t, s.Designations(), before)
}

func TestDeleteDesignationOnlyDeactivatedReferences(t *testing.T) {
	s := seeded(t)
	// shift the active trainer off desig-2 so only the deactivated user-3 holds it
	u, err := s.GetUser("user-2")
	require.NoError(t, err)
	u.DesignationID = "desig-1"
	_, err = s.UpdateUser(u)
	require.NoError(t, err)

	require.NoError(t, s.DeleteDesignation("desig-2"))
}

func TestDeleteRoleReferencedByUser(t *testing.T) {
	s := seeded(t)
	err := s.DeleteRole("role-2")
	require.Error(t, err)
	assert.Len(t, s.Roles(), 2)
}

func TestDeleteSkillReferencedByCourse(t *testing.T) {
	s := seeded(t)
	err := s.DeleteSkill("skill-1")
	require.Error(t, err)

	// drop the referencing course, then removal succeeds
	require.NoError(t, s.DeleteCourse("course-1"))
	require.NoError(t, s.DeleteSkill("skill-1"))
}

func TestDeactivateAndReactivateUser(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.DeactivateUser("user-2"))

	u, err := s.GetUser("user-2")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusDeactivated, u.Status)
	assert.Len(t, s.Users(), 3) // record stays

	require.NoError(t, s.ReactivateUser("user-2"))
	u, err = s.GetUser("user-2")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, u.Status)
}

func TestStudentOwnedByCollege(t *testing.T) {
	s := seeded(t)

	added, err := s.AddStudent("college-1", models.Student{Name: "Divya N", Department: "ECE", Batch: "2025-B"})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	added.Trainer = "Priya Sharma"
	_, err = s.UpdateStudent("college-1", added)
	require.NoError(t, err)

	// mutations through a different college are refused
	_, err = s.UpdateStudent("college-2", added)
	require.Error(t, err)

	require.NoError(t, s.RemoveStudent("college-1", added.ID))
	college, err := s.GetCollege("college-1")
	require.NoError(t, err)
	assert.Len(t, college.Students, 1)
}

func TestFindAssessmentReturnsOwningChapter(t *testing.T) {
	s := seeded(t)
	assessment, chapterID, ok := s.FindAssessment("assessment-3")
	require.True(t, ok)
	assert.Equal(t, "chapter-2", chapterID)
	assert.Equal(t, models.AssessmentPreKBA, assessment.Kind)

	_, _, ok = s.FindAssessment("missing")
	assert.False(t, ok)
}

func TestUpdateCourseReindexesSkills(t *testing.T) {
	s := seeded(t)
	course, err := s.GetCourse("course-2")
	require.NoError(t, err)
	course.CoreSkills = models.StringList{"skill-2"}
	_, err = s.UpdateCourse(course)
	require.NoError(t, err)

	// skill-4 is no longer referenced anywhere
	require.NoError(t, s.DeleteSkill("skill-4"))
}
