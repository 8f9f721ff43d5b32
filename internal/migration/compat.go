package migration

import (
	"fmt"

	"github.com/promptdeck/platform/backend/internal/catalog"
	"github.com/promptdeck/platform/backend/internal/legacy"
)

// CheckCompatibility is a stateless pre-flight check for a single record,
// used outside the plan lifecycle. Purely advisory: it never touches the
// store or the registry.
func CheckCompatibility(registry catalog.Registry, record *legacy.Record) *CompatibilityReport {
	report := &CompatibilityReport{
		Compatible:      true,
		Issues:          []string{},
		Recommendations: []string{},
	}

	def, supported := registry.Lookup(record.Category)
	if !supported {
		report.Compatible = false
		report.Issues = append(report.Issues, fmt.Sprintf("category %q has no target definition and cannot be migrated automatically", record.Category))
		report.Recommendations = append(report.Recommendations, fmt.Sprintf("define a custom target definition for category %q or migrate this record manually", record.Category))
	}

	if len(record.RawConfig) == 0 {
		report.Compatible = false
		report.Issues = append(report.Issues, "rawConfig is empty; the migrated target would carry default settings only")
		report.Recommendations = append(report.Recommendations, "populate the record's settings before migrating, or accept catalog defaults")
	}

	if supported {
		for _, key := range def.DeprecatedKeys {
			if _, present := record.RawConfig[key]; present {
				report.Compatible = false
				report.Issues = append(report.Issues, fmt.Sprintf("rawConfig uses deprecated setting %q which is not honored after migration", key))
				report.Recommendations = append(report.Recommendations, fmt.Sprintf("remove %q or replace it with its current equivalent before migrating", key))
			}
		}
	}

	return report
}
