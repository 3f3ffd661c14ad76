package domain

import "fmt"

// PageOperation places one source page at the next destination position.
// Position within the plan is the destination page position; SourceIndex is
// 0-based into the original document. Source pages that never appear in a
// plan are dropped from the output.
type PageOperation struct {
	SourceIndex     int `json:"source_index"`
	RotationDegrees int `json:"rotation_degrees"` // one of 0, 90, 180, 270
}

// PageOperationPlan describes the desired output page sequence for a
// page-editing operation. Built by the caller from user edits, consumed once,
// then discarded. A SourceIndex may repeat: duplicating a page is legal.
type PageOperationPlan struct {
	SourcePageCount int             `json:"source_page_count"`
	Operations      []PageOperation `json:"operations"`
}

// ValidRotation reports whether deg is a legal page rotation.
func ValidRotation(deg int) bool {
	switch deg {
	case 0, 90, 180, 270:
		return true
	}
	return false
}

// PlanErrorCode classifies plan validation failures.
type PlanErrorCode string

const (
	PlanErrorEmpty                 PlanErrorCode = "empty"
	PlanErrorSourceIndexOutOfRange PlanErrorCode = "source_index_out_of_range"
	PlanErrorInvalidRotation       PlanErrorCode = "invalid_rotation"
)

// PlanError reports why a page operation plan failed validation. OpIndex is
// the offending operation's position in the plan, or -1 when the failure is
// not tied to a single operation.
type PlanError struct {
	Code    PlanErrorCode
	OpIndex int
	Message string
}

func (e *PlanError) Error() string {
	if e.OpIndex >= 0 {
		return fmt.Sprintf("plan invalid (%s) at operation %d: %s", e.Code, e.OpIndex, e.Message)
	}
	return fmt.Sprintf("plan invalid (%s): %s", e.Code, e.Message)
}
