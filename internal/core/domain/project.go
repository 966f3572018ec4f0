package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Project is the unit testimonials are collected for. Deleting a project
// cascades to its tokens and testimonials.
type Project struct {
	ID            string
	Name          string
	Description   string
	ClientName    string
	ClientEmail   string
	ClientCompany string
	ProjectURL    string
	ProjectImage  string
	Tags          []string
	Status        ProjectStatus
	AdminID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProjectUpdate carries a partial update; nil fields are left untouched.
type ProjectUpdate struct {
	Name          *string
	Description   *string
	ClientName    *string
	ClientEmail   *string
	ClientCompany *string
	ProjectURL    *string
	ProjectImage  *string
	Tags          *[]string
	Status        *ProjectStatus
}
