package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CourseStatus tracks the publication lifecycle.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "Draft"
	CourseStatusPublished CourseStatus = "Published"
)

// Course is a training program composed of modules and core skills.
type Course struct {
	ID           string       `db:"id" json:"id"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	CoreSkills   StringList   `db:"core_skills" json:"core_skills"`
	DurationDays int          `db:"duration_days" json:"duration_days"`
	Modules      ModuleList   `db:"modules" json:"modules"`
	Status       CourseStatus `db:"status" json:"status"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// CourseModule is a named grouping of chapters inside a course.
type CourseModule struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Chapters []string `json:"chapters"`
}

// Chapter is a flat content unit; courses reference chapters through their
// modules, and assessments nest inside the chapter.
type Chapter struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Skills      StringList     `db:"skills" json:"skills"`
	Assessments AssessmentList `db:"assessments" json:"assessments"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// AssessmentKind distinguishes pre/post knowledge-based assessments.
type AssessmentKind string

const (
	AssessmentPreKBA  AssessmentKind = "Pre-KBA"
	AssessmentPostKBA AssessmentKind = "Post-KBA"
)

// Assessment nests inside a chapter but is addressed by id in URLs, so the
// owning chapter sometimes has to be reconstructed from the path or by scan.
type Assessment struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Kind          AssessmentKind `json:"kind"`
	Duration      int            `json:"duration"`
	Type          string         `json:"type"`
	Skills        []string       `json:"skills"`
	PassingCutoff int            `json:"passing_cutoff"`
	Proficiency   Proficiency    `json:"proficiency"`
	Questions     []Question     `json:"questions"`
}

// Proficiency holds the score thresholds per level, in percent.
type Proficiency struct {
	Expert       int `json:"expert"`
	Intermediate int `json:"intermediate"`
	Novice       int `json:"novice"`
}

// Question is a single assessment item.
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Skill is a tagged competency referenced by courses, chapters and
// assessments. Removal is refused while any course still lists it.
type Skill struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CourseFilter captures list filtering for courses.
type CourseFilter struct {
	Status   *CourseStatus
	Search   string
	Page     int
	PageSize int
}

// StringList persists a []string as a JSONB column.
type StringList []string

// Value marshals the list for persistence.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l, "StringList")
}

// ModuleList persists []CourseModule as a JSONB column.
type ModuleList []CourseModule

// Value marshals the list for persistence.
func (l ModuleList) Value() (driver.Value, error) {
	if l == nil {
		l = ModuleList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal module list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *ModuleList) Scan(value interface{}) error {
	return scanJSON(value, l, "ModuleList")
}

// AssessmentList persists []Assessment as a JSONB column.
type AssessmentList []Assessment

// Value marshals the list for persistence.
func (l AssessmentList) Value() (driver.Value, error) {
	if l == nil {
		l = AssessmentList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal assessment list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *AssessmentList) Scan(value interface{}) error {
	return scanJSON(value, l, "AssessmentList")
}

func scanJSON(value interface{}, dest interface{}, name string) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for %s", value, name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
