package migration

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/legacy"
)

// AnalyzeRisks inspects a record set against the derived target specs and
// returns categorized risks. Pure function; the analyzer never mutates its
// inputs and holds no state.
func AnalyzeRisks(records []legacy.Record, specs []TargetSpec, recordThreshold int) []Risk {
	var risks []Risk

	supported := make(map[string]bool, len(specs))
	for _, spec := range specs {
		supported[spec.Category] = true
	}

	orphansByCategory := make(map[string][]uuid.UUID)
	var emptyConfig []uuid.UUID
	for _, record := range records {
		if !supported[record.Category] {
			orphansByCategory[record.Category] = append(orphansByCategory[record.Category], record.ID)
		}
		if len(record.RawConfig) == 0 {
			emptyConfig = append(emptyConfig, record.ID)
		}
	}

	orphanCategories := make([]string, 0, len(orphansByCategory))
	for category := range orphansByCategory {
		orphanCategories = append(orphanCategories, category)
	}
	sort.Strings(orphanCategories)

	for _, category := range orphanCategories {
		ids := orphansByCategory[category]
		risks = append(risks, Risk{
			Kind:              RiskCompatibility,
			Severity:          SeverityHigh,
			Description:       fmt.Sprintf("category %q has no target definition; %d record(s) cannot be migrated", category, len(ids)),
			Mitigation:        fmt.Sprintf("add a target definition for category %q or migrate these records manually", category),
			AffectedRecordIDs: ids,
		})
	}

	if len(emptyConfig) > 0 {
		risks = append(risks, Risk{
			Kind:              RiskConfiguration,
			Severity:          SeverityMedium,
			Description:       fmt.Sprintf("%d record(s) have an empty rawConfig; targets will be created with default settings only", len(emptyConfig)),
			Mitigation:        "review these records and populate settings before migrating, or accept catalog defaults",
			AffectedRecordIDs: emptyConfig,
		})
	}

	if len(records) > recordThreshold {
		risks = append(risks, Risk{
			Kind:        RiskPerformance,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("migrating %d records exceeds the %d-record threshold and may take a while", len(records), recordThreshold),
			Mitigation:  "run the migration during a low-traffic window",
		})
	}

	return risks
}
