package migration

import (
	"sort"

	"github.com/promptdeck/platform/backend/internal/catalog"
)

// SpecBuilder derives target provider specs from legacy category counts
// using the built-in catalog
type SpecBuilder struct {
	registry catalog.Registry
}

// NewSpecBuilder creates a new spec builder backed by the given catalog
func NewSpecBuilder(registry catalog.Registry) *SpecBuilder {
	return &SpecBuilder{registry: registry}
}

// Build returns one TargetSpec per supported category, ordered by category
// name, plus the sorted list of categories the catalog does not know.
func (b *SpecBuilder) Build(countsByCategory map[string]int) ([]TargetSpec, []string) {
	specs := make([]TargetSpec, 0, len(countsByCategory))
	var unsupported []string

	for category, count := range countsByCategory {
		def, ok := b.registry.Lookup(category)
		if !ok {
			unsupported = append(unsupported, category)
			continue
		}

		target := *def
		target.Models = nil
		specs = append(specs, TargetSpec{
			Category:        category,
			Target:          target,
			SubResources:    def.Models,
			AffectedRecords: count,
		})
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Category < specs[j].Category
	})
	sort.Strings(unsupported)

	return specs, unsupported
}
