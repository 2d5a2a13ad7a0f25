package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

// Store is the in-memory demo database backing screens not yet wired to the
// real API, and the navigation resolver/search. Collections keep insertion
// order; mutations are synchronous and guarded by a single RWMutex.
//
// Referential integrity is enforced through reverse indexes (referenced id →
// set of referencing ids) instead of title-string scans: a designation, role
// or skill cannot be removed while the index still holds a qualifying
// referencing record, and the refused mutation leaves the collection
// untouched.
type Store struct {
	mu sync.RWMutex

	courses      []models.Course
	chapters     []models.Chapter
	skills       []models.Skill
	users        []models.User
	roles        []models.Role
	designations []models.Designation
	colleges     []models.College

	designationRefs map[string]map[string]struct{} // designation id -> user ids
	roleRefs        map[string]map[string]struct{} // role id -> user ids
	skillRefs       map[string]map[string]struct{} // skill id -> course ids
}

// New returns an empty store.
func New() *Store {
	return &Store{
		designationRefs: make(map[string]map[string]struct{}),
		roleRefs:        make(map[string]map[string]struct{}),
		skillRefs:       make(map[string]map[string]struct{}),
	}
}

func addRef(index map[string]map[string]struct{}, key, ref string) {
	if key == "" {
		return
	}
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[ref] = struct{}{}
}

func dropRef(index map[string]map[string]struct{}, key, ref string) {
	if set, ok := index[key]; ok {
		delete(set, ref)
		if len(set) == 0 {
			delete(index, key)
		}
	}
}

func newID() string { return uuid.NewString() }

// --- courses ---

// Courses returns a copy of the course collection in insertion order.
func (s *Store) Courses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// GetCourse returns a course by id.
func (s *Store) GetCourse(id string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

// CreateCourse appends a course and indexes its skill references.
func (s *Store) CreateCourse(course models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if course.ID == "" {
		course.ID = newID()
	}
	if course.Status == "" {
		course.Status = models.CourseStatusDraft
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	course.UpdatedAt = course.CreatedAt
	s.courses = append(s.courses, course)
	for _, skillID := range course.CoreSkills {
		addRef(s.skillRefs, skillID, course.ID)
	}
	return course, nil
}

// UpdateCourse replaces a course and reindexes its skill references.
func (s *Store) UpdateCourse(course models.Course) (models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.courses {
		if c.ID == course.ID {
			for _, skillID := range c.CoreSkills {
				dropRef(s.skillRefs, skillID, c.ID)
			}
			course.CreatedAt = c.CreatedAt
			course.UpdatedAt = time.Now().UTC()
			s.courses[i] = course
			for _, skillID := range course.CoreSkills {
				addRef(s.skillRefs, skillID, course.ID)
			}
			return course, nil
		}
	}
	return models.Course{}, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

// DeleteCourse removes a course outright.
func (s *Store) DeleteCourse(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.courses {
		if c.ID == id {
			for _, skillID := range c.CoreSkills {
				dropRef(s.skillRefs, skillID, id)
			}
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

// --- chapters ---

// Chapters returns a copy of the chapter collection.
func (s *Store) Chapters() []models.Chapter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Chapter, len(s.chapters))
	copy(out, s.chapters)
	return out
}

// GetChapter returns a chapter by id.
func (s *Store) GetChapter(id string) (models.Chapter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chapters {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Chapter{}, appErrors.Clone(appErrors.ErrNotFound, "chapter not found")
}

// CreateChapter appends a chapter.
func (s *Store) CreateChapter(chapter models.Chapter) (models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chapter.ID == "" {
		chapter.ID = newID()
	}
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = time.Now().UTC()
	}
	s.chapters = append(s.chapters, chapter)
	return chapter, nil
}

// UpdateChapter replaces a chapter, assessments included.
func (s *Store) UpdateChapter(chapter models.Chapter) (models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.chapters {
		if c.ID == chapter.ID {
			chapter.CreatedAt = c.CreatedAt
			s.chapters[i] = chapter
			return chapter, nil
		}
	}
	return models.Chapter{}, appErrors.Clone(appErrors.ErrNotFound, "chapter not found")
}

// DeleteChapter removes a chapter and its nested assessments.
func (s *Store) DeleteChapter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.chapters {
		if c.ID == id {
			s.chapters = append(s.chapters[:i], s.chapters[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "chapter not found")
}

// FindAssessment searches every chapter's assessments and returns the match
// along with the owning chapter id.
func (s *Store) FindAssessment(assessmentID string) (models.Assessment, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chapters {
		for _, a := range c.Assessments {
			if a.ID == assessmentID {
				return a, c.ID, true
			}
		}
	}
	return models.Assessment{}, "", false
}

// --- skills ---

// Skills returns a copy of the skill collection.
func (s *Store) Skills() []models.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Skill, len(s.skills))
	copy(out, s.skills)
	return out
}

// CreateSkill appends a skill.
func (s *Store) CreateSkill(skill models.Skill) (models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if skill.ID == "" {
		skill.ID = newID()
	}
	if skill.CreatedAt.IsZero() {
		skill.CreatedAt = time.Now().UTC()
	}
	s.skills = append(s.skills, skill)
	return skill, nil
}

// DeleteSkill refuses removal while any course still lists the skill.
func (s *Store) DeleteSkill(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if refs := s.skillRefs[id]; len(refs) > 0 {
		return appErrors.Clone(appErrors.ErrReferenced, "skill is used by existing courses")
	}
	for i, sk := range s.skills {
		if sk.ID == id {
			s.skills = append(s.skills[:i], s.skills[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "skill not found")
}

// --- users ---

// Users returns a copy of the user collection.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// GetUser returns a user by id.
func (s *Store) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// CreateUser appends a user and indexes its role/designation references.
func (s *Store) CreateUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = newID()
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt
	s.users = append(s.users, user)
	addRef(s.designationRefs, user.DesignationID, user.ID)
	addRef(s.roleRefs, user.RoleID, user.ID)
	return user, nil
}

// UpdateUser replaces a user and reindexes references.
func (s *Store) UpdateUser(user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			dropRef(s.designationRefs, u.DesignationID, u.ID)
			dropRef(s.roleRefs, u.RoleID, u.ID)
			user.CreatedAt = u.CreatedAt
			user.UpdatedAt = time.Now().UTC()
			s.users[i] = user
			addRef(s.designationRefs, user.DesignationID, user.ID)
			addRef(s.roleRefs, user.RoleID, user.ID)
			return user, nil
		}
	}
	return models.User{}, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// DeactivateUser flips the status; the record stays and the change is
// reversible through ReactivateUser.
func (s *Store) DeactivateUser(id string) error {
	return s.setUserStatus(id, models.UserStatusDeactivated)
}

// ReactivateUser restores a deactivated account.
func (s *Store) ReactivateUser(id string) error {
	return s.setUserStatus(id, models.UserStatusActive)
}

func (s *Store) setUserStatus(id string, status models.UserStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i].Status = status
			s.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// --- roles ---

// Roles returns a copy of the role collection.
func (s *Store) Roles() []models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// RoleTitle resolves a role id to its display title.
func (s *Store) RoleTitle(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r.ID == id {
			return r.Title
		}
	}
	return ""
}

// CreateRole appends a role.
func (s *Store) CreateRole(role models.Role) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role.ID == "" {
		role.ID = newID()
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}
	role.UpdatedAt = role.CreatedAt
	s.roles = append(s.roles, role)
	return role, nil
}

// UpdateRole replaces a role, permission grants included.
func (s *Store) UpdateRole(role models.Role) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.roles {
		if r.ID == role.ID {
			role.CreatedAt = r.CreatedAt
			role.UpdatedAt = time.Now().UTC()
			s.roles[i] = role
			return role, nil
		}
	}
	return models.Role{}, appErrors.Clone(appErrors.ErrNotFound, "role not found")
}

// DeleteRole refuses removal while any user still references the role.
func (s *Store) DeleteRole(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if refs := s.roleRefs[id]; len(refs) > 0 {
		return appErrors.Clone(appErrors.ErrReferenced, "role is assigned to existing users")
	}
	for i, r := range s.roles {
		if r.ID == id {
			s.roles = append(s.roles[:i], s.roles[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "role not found")
}

// --- designations ---

// Designations returns a copy of the designation collection.
func (s *Store) Designations() []models.Designation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Designation, len(s.designations))
	copy(out, s.designations)
	return out
}

// DesignationTitle resolves a designation id to its display title.
func (s *Store) DesignationTitle(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.designations {
		if d.ID == id {
			return d.Title
		}
	}
	return ""
}

// CreateDesignation appends a designation.
func (s *Store) CreateDesignation(designation models.Designation) (models.Designation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if designation.ID == "" {
		designation.ID = newID()
	}
	if designation.CreatedAt.IsZero() {
		designation.CreatedAt = time.Now().UTC()
	}
	s.designations = append(s.designations, designation)
	return designation, nil
}

// DeleteDesignation refuses removal while any active user still carries the
// designation. Deactivated accounts do not block removal.
func (s *Store) DeleteDesignation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID := range s.designationRefs[id] {
		for _, u := range s.users {
			if u.ID == userID && u.Active() {
				return appErrors.Clone(appErrors.ErrReferenced, "designation is assigned to active users")
			}
		}
	}
	for i, d := range s.designations {
		if d.ID == id {
			s.designations = append(s.designations[:i], s.designations[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "designation not found")
}

// --- colleges & students ---

// Colleges returns a copy of the college collection.
func (s *Store) Colleges() []models.College {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.College, len(s.colleges))
	copy(out, s.colleges)
	return out
}

// GetCollege returns a college by id.
func (s *Store) GetCollege(id string) (models.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.colleges {
		if c.ID == id {
			return c, nil
		}
	}
	return models.College{}, appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

// CreateCollege appends a college.
func (s *Store) CreateCollege(college models.College) (models.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if college.ID == "" {
		college.ID = newID()
	}
	if college.CreatedAt.IsZero() {
		college.CreatedAt = time.Now().UTC()
	}
	college.UpdatedAt = college.CreatedAt
	s.colleges = append(s.colleges, college)
	return college, nil
}

// UpdateCollege replaces a college.
func (s *Store) UpdateCollege(college models.College) (models.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.colleges {
		if c.ID == college.ID {
			college.CreatedAt = c.CreatedAt
			college.UpdatedAt = time.Now().UTC()
			s.colleges[i] = college
			return college, nil
		}
	}
	return models.College{}, appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

// DeleteCollege removes a college along with its owned students.
func (s *Store) DeleteCollege(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.colleges {
		if c.ID == id {
			s.colleges = append(s.colleges[:i], s.colleges[i+1:]...)
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

// AddStudent appends a student to the owning college.
func (s *Store) AddStudent(collegeID string, student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.colleges {
		if c.ID == collegeID {
			if student.ID == "" {
				student.ID = newID()
			}
			s.colleges[i].Students = append(s.colleges[i].Students, student)
			s.colleges[i].UpdatedAt = time.Now().UTC()
			return student, nil
		}
	}
	return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

// UpdateStudent replaces a student inside the owning college.
func (s *Store) UpdateStudent(collegeID string, student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.colleges {
		if c.ID != collegeID {
			continue
		}
		for j, st := range c.Students {
			if st.ID == student.ID {
				s.colleges[i].Students[j] = student
				s.colleges[i].UpdatedAt = time.Now().UTC()
				return student, nil
			}
		}
		return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return models.Student{}, appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

// RemoveStudent deletes a student from the owning college.
func (s *Store) RemoveStudent(collegeID, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.colleges {
		if c.ID != collegeID {
			continue
		}
		for j, st := range c.Students {
			if st.ID == studentID {
				s.colleges[i].Students = append(c.Students[:j], c.Students[j+1:]...)
				s.colleges[i].UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return appErrors.Clone(appErrors.ErrNotFound, "college not found")
}
