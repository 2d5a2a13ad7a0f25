package navigation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/models"
	"github.com/nunukkam/admin-portal-api/internal/store"
)

func TestSearchBlankQueryReturnsNothing(t *testing.T) {
	r := seededResolver(t)

	assert.Nil(t, r.Search(""))
	assert.Nil(t, r.Search("   "))
}

func TestSearchScanOrder(t *testing.T) {
	r := seededResolver(t)

	results := r.Search("communication")
	require.Len(t, results, 3)

	assert.Equal(t, CategoryCourse, results[0].Category)
	assert.Equal(t, "Campus to Corporate", results[0].Title)
	assert.Equal(t, "/courses/edit/course-1", results[0].Path)

	assert.Equal(t, CategoryChapter, results[1].Category)
	assert.Equal(t, "Foundations of Communication", results[1].Title)
	assert.Equal(t, "/courses/chapters/edit/chapter-1", results[1].Path)

	assert.Equal(t, CategorySkill, results[2].Category)
	assert.Equal(t, "Communication", results[2].Title)
	assert.Equal(t, "/courses/skills", results[2].Path)
}

func TestSearchUserSubtitleResolvesTitles(t *testing.T) {
	r := seededResolver(t)

	results := r.Search("arun")
	require.Len(t, results, 1)
	assert.Equal(t, CategoryUser, results[0].Category)
	assert.Equal(t, "Arun Velmurugan", results[0].Title)
	assert.Equal(t, "Trainer - Senior Trainer", results[0].Subtitle)
	assert.Equal(t, "/users/edit/user-2", results[0].Path)
}

func TestSearchSkipsDeactivatedUsers(t *testing.T) {
	r := seededResolver(t)

	assert.Empty(t, r.Search("kavitha"))
}

func TestSearchCollegeByCity(t *testing.T) {
	r := seededResolver(t)

	results := r.Search("chennai")
	require.Len(t, results, 1)
	assert.Equal(t, CategoryCollege, results[0].Category)
	assert.Equal(t, "Global Institute of Technology", results[0].Title)
	assert.Equal(t, "Chennai, Tamil Nadu", results[0].Subtitle)
}

func TestSearchDoesNotReachStudents(t *testing.T) {
	r := seededResolver(t)

	// Rahul Kumar only exists as a student inside college-1; students are
	// not a searchable collection
	assert.Empty(t, r.Search("rahul"))
}

func TestSearchSkillFallbackSubtitle(t *testing.T) {
	r := seededResolver(t)

	results := r.Search("java")
	require.Len(t, results, 2)
	assert.Equal(t, "Java Full Stack", results[0].Title)
	assert.Equal(t, CategorySkill, results[1].Category)
	assert.Equal(t, "Skill", results[1].Subtitle)
}

func TestSearchCapsResults(t *testing.T) {
	s := store.New()
	for i := 0; i < 12; i++ {
		_, err := s.CreateCourse(models.Course{
			ID:     fmt.Sprintf("course-%d", i),
			Title:  fmt.Sprintf("Data Analytics Track %d", i),
			Status: models.CourseStatusDraft,
		})
		require.NoError(t, err)
	}
	r := NewResolver(s, nil)

	results := r.Search("data analytics")
	assert.Len(t, results, maxSearchResults)
}

func TestSearchCaseInsensitive(t *testing.T) {
	r := seededResolver(t)

	assert.Equal(t, r.Search("CAMPUS"), r.Search("campus"))
	require.NotEmpty(t, r.Search("CAMPUS"))
}
