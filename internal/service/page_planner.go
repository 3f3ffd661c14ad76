package service

import (
	"fmt"
	"sort"

	"pdfsmarttools/internal/domain"
)

// PagePlanner validates caller-built page operation plans before they reach
// the processing backend, and builds plans for the common edits so callers
// don't hand-assemble operation lists.
//
// Deletion is expressed by omission: a source page that appears in no
// operation is dropped. A repeated source index duplicates that page; the
// validator allows it deliberately.
type PagePlanner struct {
	logger domain.Logger
}

// NewPagePlanner creates a new page planner
func NewPagePlanner(logger domain.Logger) *PagePlanner {
	return &PagePlanner{logger: logger}
}

// Validate checks a plan against the document it targets. The empty-plan rule
// is the only guard against a caller accidentally dropping every page.
func (p *PagePlanner) Validate(plan *domain.PageOperationPlan) error {
	if len(plan.Operations) == 0 {
		return &domain.PlanError{
			Code:    domain.PlanErrorEmpty,
			OpIndex: -1,
			Message: "at least one page must survive",
		}
	}

	for i, op := range plan.Operations {
		if op.SourceIndex < 0 || op.SourceIndex >= plan.SourcePageCount {
			return &domain.PlanError{
				Code:    domain.PlanErrorSourceIndexOutOfRange,
				OpIndex: i,
				Message: fmt.Sprintf("source index %d outside [0,%d)", op.SourceIndex, plan.SourcePageCount),
			}
		}
		if !domain.ValidRotation(op.RotationDegrees) {
			return &domain.PlanError{
				Code:    domain.PlanErrorInvalidRotation,
				OpIndex: i,
				Message: fmt.Sprintf("rotation %d not one of 0/90/180/270", op.RotationDegrees),
			}
		}
	}

	return nil
}

// ResultingPageCount returns how many pages the transformed document will
// have: one per operation, duplicates included.
func (p *PagePlanner) ResultingPageCount(plan *domain.PageOperationPlan) int {
	return len(plan.Operations)
}

// RotateOnly builds a plan that keeps every page in order, rotating the ones
// listed in rotationByIndex. Rotations are normalized into {0,90,180,270}.
func (p *PagePlanner) RotateOnly(pageCount int, rotationByIndex map[int]int) *domain.PageOperationPlan {
	ops := make([]domain.PageOperation, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		ops = append(ops, domain.PageOperation{
			SourceIndex:     i,
			RotationDegrees: normalizeRotation(rotationByIndex[i]),
		})
	}
	return &domain.PageOperationPlan{SourcePageCount: pageCount, Operations: ops}
}

// DropPages builds a plan that keeps every page except the given indices, in
// original order with no rotation. Indices outside the document are ignored.
func (p *PagePlanner) DropPages(pageCount int, indicesToDrop []int) *domain.PageOperationPlan {
	drop := make(map[int]struct{}, len(indicesToDrop))
	for _, idx := range indicesToDrop {
		drop[idx] = struct{}{}
	}

	ops := make([]domain.PageOperation, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if _, dropped := drop[i]; dropped {
			continue
		}
		ops = append(ops, domain.PageOperation{SourceIndex: i})
	}
	return &domain.PageOperationPlan{SourcePageCount: pageCount, Operations: ops}
}

// Reorder builds a plan placing source pages in the given order, with
// per-source rotations. Order entries may repeat to duplicate a page.
func (p *PagePlanner) Reorder(pageCount int, newOrderOfSourceIndices []int, rotationByIndex map[int]int) *domain.PageOperationPlan {
	ops := make([]domain.PageOperation, 0, len(newOrderOfSourceIndices))
	for _, src := range newOrderOfSourceIndices {
		ops = append(ops, domain.PageOperation{
			SourceIndex:     src,
			RotationDegrees: normalizeRotation(rotationByIndex[src]),
		})
	}
	return &domain.PageOperationPlan{SourcePageCount: pageCount, Operations: ops}
}

// SurvivingSourceIndices returns the distinct source pages a plan keeps, in
// ascending order. Used by the UI layer to show what a plan drops.
func (p *PagePlanner) SurvivingSourceIndices(plan *domain.PageOperationPlan) []int {
	seen := make(map[int]struct{}, len(plan.Operations))
	for _, op := range plan.Operations {
		seen[op.SourceIndex] = struct{}{}
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// normalizeRotation maps an arbitrary degree value into {0,90,180,270},
// snapping to the next lower quarter turn.
func normalizeRotation(deg int) int {
	deg = ((deg % 360) + 360) % 360
	return deg - deg%90
}
