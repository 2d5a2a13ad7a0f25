package navigation

import "strings"

// SearchResult is one row of the global type-ahead dropdown.
type SearchResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Path     string `json:"path"`
}

// Search result categories.
const (
	CategoryCourse  = "course"
	CategoryUser    = "user"
	CategoryCollege = "college"
	CategoryChapter = "chapter"
	CategorySkill   = "skill"
)

// maxSearchResults caps the combined dropdown length. Collections scanned
// earlier can crowd out later ones.
const maxSearchResults = 8

// Search performs a case-insensitive substring match across the collections
// in a fixed order: courses, users, colleges, chapters, skills. Matches keep
// their collection order; there is no relevance scoring. A blank query
// returns nothing rather than a full listing.
func (r *Resolver) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	results := make([]SearchResult, 0, maxSearchResults)

	push := func(res SearchResult) bool {
		results = append(results, res)
		return len(results) < maxSearchResults
	}

	for _, c := range r.dir.Courses() {
		if !matches(q, c.Title, c.Description) {
			continue
		}
		if !push(SearchResult{
			ID:       c.ID,
			Title:    c.Title,
			Subtitle: "Course - " + string(c.Status),
			Category: CategoryCourse,
			Icon:     "book-open",
			Path:     "/courses/edit/" + c.ID,
		}) {
			return results
		}
	}

	for _, u := range r.dir.Users() {
		if !u.Active() {
			continue
		}
		if !matches(q, u.FullName, u.Email) {
			continue
		}
		if !push(SearchResult{
			ID:       u.ID,
			Title:    u.FullName,
			Subtitle: r.dir.RoleTitle(u.RoleID) + " - " + r.dir.DesignationTitle(u.DesignationID),
			Category: CategoryUser,
			Icon:     "user",
			Path:     "/users/edit/" + u.ID,
		}) {
			return results
		}
	}

	for _, c := range r.dir.Colleges() {
		if !matches(q, c.Name, c.City) {
			continue
		}
		if !push(SearchResult{
			ID:       c.ID,
			Title:    c.Name,
			Subtitle: c.City + ", " + c.State,
			Category: CategoryCollege,
			Icon:     "building",
			Path:     "/colleges/edit/" + c.ID,
		}) {
			return results
		}
	}

	for _, c := range r.dir.Chapters() {
		if !matches(q, c.Name) {
			continue
		}
		if !push(SearchResult{
			ID:       c.ID,
			Title:    c.Name,
			Subtitle: "Chapter",
			Category: CategoryChapter,
			Icon:     "file-text",
			Path:     "/courses/chapters/edit/" + c.ID,
		}) {
			return results
		}
	}

	for _, sk := range r.dir.Skills() {
		if !matches(q, sk.Name) {
			continue
		}
		subtitle := sk.Description
		if subtitle == "" {
			subtitle = "Skill"
		}
		// skills deep-link to the list page, not the individual record
		if !push(SearchResult{
			ID:       sk.ID,
			Title:    sk.Name,
			Subtitle: subtitle,
			Category: CategorySkill,
			Icon:     "award",
			Path:     "/courses/skills",
		}) {
			return results
		}
	}

	return results
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
