package domain

import "testing"

func TestDailyUsageRecord_IncrementAndCount(t *testing.T) {
	record := NewDailyUsageRecord("2026-08-31")

	if got := record.Count(FeatureMerge); got != 0 {
		t.Fatalf("expected 0 for untouched feature, got %d", got)
	}

	record.Increment(FeatureMerge)
	record.Increment(FeatureMerge)
	record.Increment(FeatureOCR)

	if got := record.Count(FeatureMerge); got != 2 {
		t.Fatalf("expected 2 merge consumptions, got %d", got)
	}
	if got := record.Count(FeatureOCR); got != 1 {
		t.Fatalf("expected 1 ocr consumption, got %d", got)
	}
}

func TestDailyUsageRecord_CloneIsIndependent(t *testing.T) {
	record := NewDailyUsageRecord("2026-08-31")
	record.Increment(FeatureMerge)

	clone := record.Clone()
	clone.Increment(FeatureMerge)

	if got := record.Count(FeatureMerge); got != 1 {
		t.Fatalf("mutating a clone leaked into the original: %d", got)
	}
	if got := clone.Count(FeatureMerge); got != 2 {
		t.Fatalf("expected clone count 2, got %d", got)
	}
}

func TestDailyUsageRecord_IncrementOnNilCounts(t *testing.T) {
	record := &DailyUsageRecord{Date: "2026-08-31"}

	record.Increment(FeatureScan)

	if got := record.Count(FeatureScan); got != 1 {
		t.Fatalf("expected 1 after increment on nil map, got %d", got)
	}
}

func TestRunState_Terminal(t *testing.T) {
	terminal := []RunState{RunStateCompleted, RunStateFailed, RunStateCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}

	live := []RunState{RunStateIdle, RunStateAdmitted, RunStateRunning}
	for _, s := range live {
		if s.Terminal() {
			t.Fatalf("expected %s to be non-terminal", s)
		}
	}
}

func TestValidRotation(t *testing.T) {
	for _, deg := range []int{0, 90, 180, 270} {
		if !ValidRotation(deg) {
			t.Fatalf("expected %d to be a valid rotation", deg)
		}
	}
	for _, deg := range []int{-90, 45, 360, 91} {
		if ValidRotation(deg) {
			t.Fatalf("expected %d to be rejected", deg)
		}
	}
}

func TestDefaultPolicies_CoverAllFeatures(t *testing.T) {
	policies := DefaultPolicies()
	for _, feature := range AllFeatures() {
		policy, ok := policies[feature]
		if !ok {
			t.Fatalf("missing policy for feature %s", feature)
		}
		if policy.DailyLimit < 1 {
			t.Fatalf("expected a positive default limit for %s, got %d", feature, policy.DailyLimit)
		}
	}
}
