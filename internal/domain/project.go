package domain

import "time"

// ProjectPriority enumerates allowed priority labels.
type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
)

// ValidPriority reports whether p is one of low, medium, high.
func ValidPriority(p ProjectPriority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Project is the domain model for a dashboard project. ManagerName is a
// read-side field populated by joining the owning user; it is never written.
type Project struct {
	ID          string
	Name        string
	Description string
	Tags        []string
	ManagerID   string
	ManagerName *string
	Deadline    time.Time
	Priority    ProjectPriority
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
