package models

import "time"

type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Semester int    `json:"semester"`
	Branch   string `json:"branch"`
}

type Resource struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResumeAnalysis is the response of POST /student/analyze-resume.
type ResumeAnalysis struct {
	Filename string `json:"filename"`
	Analysis string `json:"analysis"`
}
