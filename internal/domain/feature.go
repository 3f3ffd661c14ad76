package domain

// FeatureKey identifies one gated document-transformation capability.
// The set is fixed at build time; keys are also used for telemetry and
// as the per-feature quota key.
type FeatureKey string

const (
	FeatureMerge    FeatureKey = "merge"
	FeatureCompress FeatureKey = "compress"
	FeatureConvert  FeatureKey = "convert"
	FeatureSign     FeatureKey = "sign"
	FeatureProtect  FeatureKey = "protect"
	FeatureOCR      FeatureKey = "ocr"
	FeaturePageEdit FeatureKey = "page_edit"
	FeatureScan     FeatureKey = "scan"
)

// AllFeatures returns every known feature key.
func AllFeatures() []FeatureKey {
	return []FeatureKey{
		FeatureMerge,
		FeatureCompress,
		FeatureConvert,
		FeatureSign,
		FeatureProtect,
		FeatureOCR,
		FeaturePageEdit,
		FeatureScan,
	}
}

// QuotaPolicy is the static daily allowance for one feature.
type QuotaPolicy struct {
	Feature    FeatureKey `json:"feature"`
	DailyLimit int        `json:"daily_limit"`
}

// DefaultPolicies returns the free-tier daily limits, one entry per feature.
// Privileged-tier users bypass these entirely and are never counted.
func DefaultPolicies() map[FeatureKey]QuotaPolicy {
	policies := map[FeatureKey]int{
		FeatureMerge:    3,
		FeatureCompress: 3,
		FeatureConvert:  3,
		FeatureSign:     2,
		FeatureProtect:  3,
		FeatureOCR:      2,
		FeaturePageEdit: 3,
		FeatureScan:     5,
	}

	result := make(map[FeatureKey]QuotaPolicy, len(policies))
	for feature, limit := range policies {
		result[feature] = QuotaPolicy{Feature: feature, DailyLimit: limit}
	}
	return result
}
