package service

import (
	"errors"
	"testing"

	"pdfsmarttools/internal/domain"
)

// TestPagePlanner_Validate covers the validation rules:
// - an empty plan is rejected (at least one page must survive)
// - source indices must reference pages of the original document
// - rotations are restricted to quarter turns
// - duplicated source indices are legal (page duplication)
func TestPagePlanner_Validate(t *testing.T) {
	planner := NewPagePlanner(NewMockLogger())

	tests := []struct {
		name     string
		plan     domain.PageOperationPlan
		wantCode domain.PlanErrorCode
	}{
		{
			name: "Empty plan",
			plan: domain.PageOperationPlan{
				SourcePageCount: 3,
				Operations:      []domain.PageOperation{},
			},
			wantCode: domain.PlanErrorEmpty,
		},
		{
			name: "Source index out of range",
			plan: domain.PageOperationPlan{
				SourcePageCount: 3,
				Operations: []domain.PageOperation{
					{SourceIndex: 5, RotationDegrees: 0},
				},
			},
			wantCode: domain.PlanErrorSourceIndexOutOfRange,
		},
		{
			name: "Negative source index",
			plan: domain.PageOperationPlan{
				SourcePageCount: 3,
				Operations: []domain.PageOperation{
					{SourceIndex: -1, RotationDegrees: 0},
				},
			},
			wantCode: domain.PlanErrorSourceIndexOutOfRange,
		},
		{
			name: "Invalid rotation",
			plan: domain.PageOperationPlan{
				SourcePageCount: 3,
				Operations: []domain.PageOperation{
					{SourceIndex: 0, RotationDegrees: 45},
				},
			},
			wantCode: domain.PlanErrorInvalidRotation,
		},
		{
			name: "Valid reorder with rotation",
			plan: domain.PageOperationPlan{
				SourcePageCount: 3,
				Operations: []domain.PageOperation{
					{SourceIndex: 2, RotationDegrees: 90},
					{SourceIndex: 0, RotationDegrees: 0},
				},
			},
		},
		{
			name: "Duplicate page is legal",
			plan: domain.PageOperationPlan{
				SourcePageCount: 1,
				Operations: []domain.PageOperation{
					{SourceIndex: 0, RotationDegrees: 0},
					{SourceIndex: 0, RotationDegrees: 0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := planner.Validate(&tt.plan)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid plan, got %v", err)
				}
				return
			}
			var planErr *domain.PlanError
			if !errors.As(err, &planErr) {
				t.Fatalf("expected *domain.PlanError, got %v", err)
			}
			if planErr.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, planErr.Code)
			}
		})
	}
}

func TestPagePlanner_ResultingPageCount(t *testing.T) {
	planner := NewPagePlanner(NewMockLogger())

	plan := &domain.PageOperationPlan{
		SourcePageCount: 3,
		Operations: []domain.PageOperation{
			{SourceIndex: 2, RotationDegrees: 90},
			{SourceIndex: 0, RotationDegrees: 0},
		},
	}

	if got := planner.ResultingPageCount(plan); got != 2 {
		t.Fatalf("expected resulting page count 2, got %d", got)
	}

	duplicated := &domain.PageOperationPlan{
		SourcePageCount: 1,
		Operations: []domain.PageOperation{
			{SourceIndex: 0},
			{SourceIndex: 0},
		},
	}
	if got := planner.ResultingPageCount(duplicated); got != 2 {
		t.Fatalf("expected duplicated plan to count 2 pages, got %d", got)
	}
}

func TestPagePlanner_RotateOnly(t *testing.T) {
	planner := NewPagePlanner(NewMockLogger())

	plan := planner.RotateOnly(3, map[int]int{1: 90, 2: -90})

	if err := planner.Validate(plan); err != nil {
		t.Fatalf("constructed plan failed validation: %v", err)
	}
	if len(plan.Operations) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(plan.Operations))
	}
	if plan.Operations[0].RotationDegrees != 0 {
		t.Fatalf("expected page 0 unrotated, got %d", plan.Operations[0].RotationDegrees)
	}
	if plan.Operations[1].RotationDegrees != 90 {
		t.Fatalf("expected page 1 rotated 90, got %d", plan.Operations[1].RotationDegrees)
	}
	// Negative quarter turn normalizes into the legal set.
	if plan.Operations[2].RotationDegrees != 270 {
		t.Fatalf("expected -90 normalized to 270, got %d", plan.Operations[2].RotationDegrees)
	}
}

func TestPagePlanner_DropPages(t *testing.T) {
	planner := NewPagePlanner(NewMockLogger())

	plan := planner.DropPages(4, []int{1, 3, 99})

	if err := planner.Validate(plan); err != nil {
		t.Fatalf("constructed plan failed validation: %v", err)
	}
	if len(plan.Operations) != 2 {
		t.Fatalf("expected 2 surviving pages, got %d", len(plan.Operations))
	}
	if plan.Operations[0].SourceIndex != 0 || plan.Operations[1].SourceIndex != 2 {
		t.Fatalf("expected surviving pages 0 and 2, got %v", plan.Operations)
	}
}

func TestPagePlanner_Reorder(t *testing.T) {
	planner := NewPagePlanner(NewMockLogger())

	plan := planner.Reorder(3, []int{2, 0, 2}, map[int]int{2: 180})

	if err := planner.Validate(plan); err != nil {
		t.Fatalf("constructed plan failed validation: %v", err)
	}
	if plan.Operations[0].SourceIndex != 2 || plan.Operations[0].RotationDegrees != 180 {
		t.Fatalf("unexpected first operation: %+v", plan.Operations[0])
	}
	if got := planner.ResultingPageCount(plan); got != 3 {
		t.Fatalf("expected 3 output pages, got %d", got)
	}
	if got := planner.SurvivingSourceIndices(plan); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("expected surviving sources [0 2], got %v", got)
	}
}
