package navigation

import (
	"strings"

	"go.uber.org/zap"

	"github.com/nunukkam/admin-portal-api/internal/models"
)

// Directory is the read surface the resolver and search need over the
// in-memory collections. The demo store satisfies it.
type Directory interface {
	Courses() []models.Course
	Chapters() []models.Chapter
	Skills() []models.Skill
	Users() []models.User
	Colleges() []models.College
	FindAssessment(id string) (models.Assessment, string, bool)
	RoleTitle(id string) string
	DesignationTitle(id string) string
}

// Crumb is one resolved breadcrumb segment. The last crumb of a trail is
// marked Current and rendered non-navigable regardless of Clickable.
type Crumb struct {
	Label     string `json:"label"`
	Path      string `json:"path"`
	Clickable bool   `json:"clickable"`
	Current   bool   `json:"current"`
}

// structuralSegments never navigate anywhere on their own.
var structuralSegments = map[string]struct{}{
	"edit":        {},
	"add":         {},
	"assessments": {},
	"questions":   {},
	"modules":     {},
}

// idStopwords are path tokens that can exceed the id-length heuristic but
// are vocabulary, not entity ids.
var idStopwords = map[string]struct{}{
	"dashboard":   {},
	"courses":     {},
	"colleges":    {},
	"chapters":    {},
	"assessments": {},
	"questions":   {},
	"users":       {},
	"add":         {},
	"edit":        {},
}

// Resolver maps URL paths to breadcrumb trails and serves the global
// type-ahead search over the same collections.
type Resolver struct {
	dir    Directory
	logger *zap.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(dir Directory, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{dir: dir, logger: logger}
}

// Resolve translates a path like /courses/chapters/chapter-1/assessments/a-1
// into a breadcrumb trail. A leading Home crumb is always present and the
// final crumb is marked as the current page.
func (r *Resolver) Resolve(path string) []Crumb {
	segments := splitPath(path)

	trail := []Crumb{{Label: "Home", Path: "/dashboard", Clickable: true}}

	// the dashboard root renders a single Dashboard crumb, never an empty trail
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == "dashboard") {
		trail = append(trail, Crumb{Label: "Dashboard", Path: "/dashboard", Clickable: true, Current: true})
		return trail
	}

	for i, segment := range segments {
		trail = append(trail, r.resolveSegment(segment, i, segments))
	}
	trail[len(trail)-1].Current = true
	return trail
}

func (r *Resolver) resolveSegment(segment string, index int, segments []string) Crumb {
	if crumb, ok := r.lookupEntity(segment, segments); ok {
		return crumb
	}

	if crumb, ok := r.fallbackForOrphanID(segment, index, segments); ok {
		return crumb
	}

	return r.staticCrumb(segment, index, segments)
}

// lookupEntity probes the collections by id: courses first, then colleges,
// then chapters, then the flattened assessments.
func (r *Resolver) lookupEntity(segment string, segments []string) (Crumb, bool) {
	for _, c := range r.dir.Courses() {
		if c.ID == segment {
			return Crumb{Label: c.Title, Path: "/courses/edit/" + c.ID, Clickable: true}, true
		}
	}
	for _, c := range r.dir.Colleges() {
		if c.ID == segment {
			return Crumb{Label: c.Name, Path: "/colleges/edit/" + c.ID, Clickable: true}, true
		}
	}
	for _, c := range r.dir.Chapters() {
		if c.ID == segment {
			return Crumb{Label: c.Name, Path: "/courses/chapters/edit/" + c.ID, Clickable: true}, true
		}
	}

	if assessment, owningChapter, ok := r.dir.FindAssessment(segment); ok {
		chapterID := chapterIDFromPath(segments)
		if chapterID == "" {
			chapterID = owningChapter
		}
		if chapterID == "" {
			// label still shown, but there is no path to reconstruct
			return Crumb{Label: assessment.Title}, true
		}
		return Crumb{
			Label:     assessment.Title,
			Path:      "/courses/chapters/" + chapterID + "/assessments/" + assessment.ID + "/edit",
			Clickable: true,
		}, true
	}

	return Crumb{}, false
}

// fallbackForOrphanID labels id-shaped segments when the collections cannot
// resolve them (a stale or freshly reloaded store). Meaning is inferred from
// the immediately preceding path token.
func (r *Resolver) fallbackForOrphanID(segment string, index int, segments []string) (Crumb, bool) {
	if len(segment) <= 5 {
		return Crumb{}, false
	}
	if _, stop := idStopwords[strings.ToLower(segment)]; stop {
		return Crumb{}, false
	}
	if index == 0 {
		return Crumb{}, false
	}

	switch segments[index-1] {
	case "chapters":
		// nothing store-backed to verify the id against
		return Crumb{Label: "Chapter"}, true
	case "assessments":
		if containsSegment(segments, "questions") {
			if chapterID := chapterIDFromPath(segments); chapterID != "" {
				return Crumb{
					Label:     "Assessment",
					Path:      "/courses/chapters/" + chapterID + "/assessments/" + segment + "/edit",
					Clickable: true,
				}, true
			}
		}
		return Crumb{Label: "Assessment"}, true
	}

	return Crumb{}, false
}

func (r *Resolver) staticCrumb(segment string, index int, segments []string) Crumb {
	label := titleCase(segment)

	if index > 0 && segments[index-1] == "courses" && index == 1 && segment == "chapters" {
		label = "Chapters"
	}

	if _, structural := structuralSegments[strings.ToLower(segment)]; structural {
		return Crumb{Label: label}
	}

	return Crumb{
		Label:     label,
		Path:      "/" + strings.Join(segments[:index+1], "/"),
		Clickable: true,
	}
}

// chapterIDFromPath reads the segment following the literal "chapters"
// token, skipping the add/edit verbs.
func chapterIDFromPath(segments []string) string {
	for i, seg := range segments {
		if seg != "chapters" || i+1 >= len(segments) {
			continue
		}
		next := segments[i+1]
		if next == "add" || next == "edit" {
			continue
		}
		return next
	}
	return ""
}

func containsSegment(segments []string, want string) bool {
	for _, seg := range segments {
		if seg == want {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func titleCase(segment string) string {
	words := strings.Split(strings.ReplaceAll(segment, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
