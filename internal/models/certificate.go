package models

import "time"

// Certificate records a completion certificate issued to a college student.
type Certificate struct {
	ID          string    `db:"id" json:"id"`
	Serial      string    `db:"serial" json:"serial"`
	CollegeID   string    `db:"college_id" json:"college_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	CourseID    string    `db:"course_id" json:"course_id"`
	CourseTitle string    `db:"course_title" json:"course_title"`
	FilePath    string    `db:"file_path" json:"-"`
	IssuedBy    string    `db:"issued_by" json:"issued_by"`
	IssuedAt    time.Time `db:"issued_at" json:"issued_at"`
}
