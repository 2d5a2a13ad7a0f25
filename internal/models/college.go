package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// College is a partner institution with its enrolled students, training
// schedules and assessment deadlines.
type College struct {
	ID                  string       `db:"id" json:"id"`
	Name                string       `db:"name" json:"name"`
	University          string       `db:"university" json:"university"`
	City                string       `db:"city" json:"city"`
	State               string       `db:"state" json:"state"`
	Address             string       `db:"address" json:"address"`
	Pincode             string       `db:"pincode" json:"pincode"`
	POCName             string       `db:"poc_name" json:"poc_name"`
	POCNumber           string       `db:"poc_number" json:"poc_number"`
	ProgramCoordinator  string       `db:"program_coordinator" json:"program_coordinator"`
	Students            StudentList  `db:"students" json:"students"`
	Schedules           ScheduleList `db:"schedules" json:"schedules"`
	AssessmentDeadlines DeadlineList `db:"assessment_deadlines" json:"assessment_deadlines"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// Student is owned exclusively by one college; mutations go through the
// owning college only.
type Student struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	Batch          string `json:"batch"`
	ContactNumber  string `json:"contact_number"`
	Email          string `json:"email"`
	CourseAssigned string `json:"course_assigned"`
	Trainer        string `json:"trainer"`
	BatchStartDate string `json:"batch_start_date"`
	BatchEndDate   string `json:"batch_end_date"`
}

// Schedule is a dated training slot for a batch covering one chapter.
type Schedule struct {
	Date      string `json:"date"`
	Batch     string `json:"batch"`
	ChapterID string `json:"chapter_id"`
}

// AssessmentDeadline records a submission cutoff communicated to a college.
type AssessmentDeadline struct {
	Title          string `json:"title"`
	SubmissionDate string `json:"submission_date"`
}

// CollegeFilter captures list filtering for colleges.
type CollegeFilter struct {
	Search   string
	State    string
	Page     int
	PageSize int
}

// StudentList persists []Student as a JSONB column.
type StudentList []Student

// Value marshals the list for persistence.
func (l StudentList) Value() (driver.Value, error) {
	if l == nil {
		l = StudentList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal student list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *StudentList) Scan(value interface{}) error {
	return scanJSON(value, l, "StudentList")
}

// ScheduleList persists []Schedule as a JSONB column.
type ScheduleList []Schedule

// Value marshals the list for persistence.
func (l ScheduleList) Value() (driver.Value, error) {
	if l == nil {
		l = ScheduleList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *ScheduleList) Scan(value interface{}) error {
	return scanJSON(value, l, "ScheduleList")
}

// DeadlineList persists []AssessmentDeadline as a JSONB column.
type DeadlineList []AssessmentDeadline

// Value marshals the list for persistence.
func (l DeadlineList) Value() (driver.Value, error) {
	if l == nil {
		l = DeadlineList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal deadline list: %w", err)
	}
	return data, nil
}

// Scan unmarshals a JSONB payload.
func (l *DeadlineList) Scan(value interface{}) error {
	return scanJSON(value, l, "DeadlineList")
}
