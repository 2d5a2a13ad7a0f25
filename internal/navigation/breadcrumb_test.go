package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunukkam/admin-portal-api/internal/store"
)

func seededResolver(t *testing.T) *Resolver {
	t.Helper()
	s := store.New()
	store.Seed(s)
	return NewResolver(s, nil)
}

func emptyResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(store.New(), nil)
}

func TestResolveDashboardRoot(t *testing.T) {
	r := seededResolver(t)

	for _, path := range []string{"", "/", "/dashboard"} {
		trail := r.Resolve(path)
		require.Len(t, trail, 2, "path %q", path)
		assert.Equal(t, "Home", trail[0].Label)
		assert.Equal(t, "Dashboard", trail[1].Label)
		assert.True(t, trail[1].Current)
	}
}

func TestResolveKnownEntityIDs(t *testing.T) {
	r := seededResolver(t)

	tests := []struct {
		path      string
		label     string
		crumbPath string
	}{
		{"/courses/edit/course-1", "Campus to Corporate", "/courses/edit/course-1"},
		{"/colleges/edit/college-1", "Global Institute of Technology", "/colleges/edit/college-1"},
		{"/courses/chapters/edit/chapter-2", "Quantitative Aptitude Basics", "/courses/chapters/edit/chapter-2"},
	}

	for _, tc := range tests {
		trail := r.Resolve(tc.path)
		last := trail[len(trail)-1]
		assert.Equal(t, tc.label, last.Label, tc.path)
		assert.Equal(t, tc.crumbPath, last.Path, tc.path)
		assert.True(t, last.Clickable, tc.path)
	}
}

func TestResolveAssessmentReconstructsOwningChapter(t *testing.T) {
	r := seededResolver(t)

	trail := r.Resolve("/courses/chapters/chapter-1/assessments/assessment-2/questions")
	require.Len(t, trail, 7) // Home + 6 segments

	assessment := trail[5]
	assert.Equal(t, "Communication Post-KBA", assessment.Label)
	assert.Equal(t, "/courses/chapters/chapter-1/assessments/assessment-2/edit", assessment.Path)
	assert.True(t, assessment.Clickable)
}

func TestResolveAssessmentChapterFromStoreScan(t *testing.T) {
	r := seededResolver(t)

	// the chapters token is followed by "add", so the owning chapter comes
	// from scanning the chapter collection instead
	trail := r.Resolve("/courses/chapters/add/assessments/assessment-3")
	last := trail[len(trail)-1]
	assert.Equal(t, "Aptitude Pre-KBA", last.Label)
	assert.Equal(t, "/courses/chapters/chapter-2/assessments/assessment-3/edit", last.Path)
	assert.True(t, last.Clickable)
}

func TestResolveStructuralSegmentsNeverClickable(t *testing.T) {
	r := seededResolver(t)

	trail := r.Resolve("/courses/chapters/chapter-1/assessments/assessment-1/questions/add")
	for _, crumb := range trail {
		switch crumb.Label {
		case "Assessments", "Questions", "Add", "Edit", "Modules":
			assert.False(t, crumb.Clickable, crumb.Label)
		}
	}
}

func TestResolveFallbackChapterLabel(t *testing.T) {
	r := emptyResolver(t)

	trail := r.Resolve("/courses/chapters/chapter-99/edit")
	require.Len(t, trail, 5)
	assert.Equal(t, "Chapter", trail[3].Label)
	assert.False(t, trail[3].Clickable)
}

func TestResolveFallbackAssessmentWithQuestions(t *testing.T) {
	r := emptyResolver(t)

	trail := r.Resolve("/courses/chapters/chapter-99/assessments/assessment-77/questions")
	assessment := trail[5]
	assert.Equal(t, "Assessment", assessment.Label)
	assert.Equal(t, "/courses/chapters/chapter-99/assessments/assessment-77/edit", assessment.Path)
	assert.True(t, assessment.Clickable)
}

func TestResolveFallbackAssessmentWithoutQuestions(t *testing.T) {
	r := emptyResolver(t)

	trail := r.Resolve("/courses/chapters/chapter-99/assessments/assessment-77")
	last := trail[len(trail)-1]
	assert.Equal(t, "Assessment", last.Label)
	assert.False(t, last.Clickable)
}

func TestResolveStaticSegmentsTitleCased(t *testing.T) {
	r := seededResolver(t)

	trail := r.Resolve("/audit-logs")
	last := trail[len(trail)-1]
	assert.Equal(t, "Audit Logs", last.Label)
	assert.Equal(t, "/audit-logs", last.Path)
	assert.True(t, last.Clickable)
}

func TestResolveChaptersUnderCourses(t *testing.T) {
	r := seededResolver(t)

	trail := r.Resolve("/courses/chapters")
	require.Len(t, trail, 3)
	assert.Equal(t, "Chapters", trail[2].Label)
	assert.True(t, trail[2].Current)
}

func TestResolveLastCrumbIsCurrent(t *testing.T) {
	r := seededResolver(t)

	trail := r.Resolve("/colleges/edit/college-1")
	for i, crumb := range trail {
		assert.Equal(t, i == len(trail)-1, crumb.Current, crumb.Label)
	}
}

func TestResolveHomeAlwaysPresent(t *testing.T) {
	r := emptyResolver(t)

	trail := r.Resolve("/users")
	require.NotEmpty(t, trail)
	assert.Equal(t, "Home", trail[0].Label)
	assert.Equal(t, "/dashboard", trail[0].Path)
	assert.True(t, trail[0].Clickable)
}
