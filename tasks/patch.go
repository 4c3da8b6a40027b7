package tasks

import "github.com/jrsteele09/go-taskboard-client/internal/utils"

// Patch is a minimal partial update for a task. Only fields that differ
// between the baseline snapshot and the edit buffer are set, so the PATCH
// body never echoes unchanged fields back to the server.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Position    *int    `json:"position,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Position == nil && p.DueDate == nil
}

// Diff produces the minimal patch that turns baseline into edited.
func Diff(baseline, edited Task) Patch {
	var p Patch
	if edited.Title != baseline.Title {
		p.Title = utils.Ptr(edited.Title)
	}
	if edited.Description != baseline.Description {
		p.Description = utils.Ptr(edited.Description)
	}
	if edited.Priority != baseline.Priority {
		p.Priority = utils.Ptr(edited.Priority)
	}
	if edited.Position != baseline.Position {
		p.Position = utils.Ptr(edited.Position)
	}
	if edited.DueDate != baseline.DueDate {
		p.DueDate = utils.Ptr(edited.DueDate)
	}
	return p
}
