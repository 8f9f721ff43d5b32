package migration

import (
	"testing"

	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func riskOfKind(risks []Risk, kind RiskKind) *Risk {
	for i := range risks {
		if risks[i].Kind == kind {
			return &risks[i]
		}
	}
	return nil
}

func TestAnalyzeRisks(t *testing.T) {
	builder := NewSpecBuilder(testCatalog())

	t.Run("unsupported category raises a high compatibility risk with affected ids", func(t *testing.T) {
		orphan := newRecord("gamma")
		records := []legacy.Record{*newRecord("alpha"), *orphan}
		specs, _ := builder.Build(map[string]int{"alpha": 1, "gamma": 1})

		risks := AnalyzeRisks(records, specs, 100)

		require.Len(t, risks, 1)
		risk := riskOfKind(risks, RiskCompatibility)
		require.NotNil(t, risk)
		assert.Equal(t, SeverityHigh, risk.Severity)
		require.Len(t, risk.AffectedRecordIDs, 1)
		assert.Equal(t, orphan.ID, risk.AffectedRecordIDs[0])
	})

	t.Run("empty rawConfig raises a medium configuration risk", func(t *testing.T) {
		empty := newRecord("alpha")
		empty.RawConfig = datatypes.JSONMap{}
		records := []legacy.Record{*empty, *newRecord("alpha")}
		specs, _ := builder.Build(map[string]int{"alpha": 2})

		risks := AnalyzeRisks(records, specs, 100)

		risk := riskOfKind(risks, RiskConfiguration)
		require.NotNil(t, risk)
		assert.Equal(t, SeverityMedium, risk.Severity)
		require.Len(t, risk.AffectedRecordIDs, 1)
		assert.Equal(t, empty.ID, risk.AffectedRecordIDs[0])
	})

	t.Run("record count above threshold raises a system-wide performance risk", func(t *testing.T) {
		var records []legacy.Record
		for i := 0; i < 5; i++ {
			records = append(records, *newRecord("alpha"))
		}
		specs, _ := builder.Build(map[string]int{"alpha": 5})

		risks := AnalyzeRisks(records, specs, 4)

		risk := riskOfKind(risks, RiskPerformance)
		require.NotNil(t, risk)
		assert.Equal(t, SeverityMedium, risk.Severity)
		assert.Empty(t, risk.AffectedRecordIDs)
	})

	t.Run("clean record set yields no risks", func(t *testing.T) {
		records := []legacy.Record{*newRecord("alpha"), *newRecord("beta")}
		specs, _ := builder.Build(map[string]int{"alpha": 1, "beta": 1})

		risks := AnalyzeRisks(records, specs, 100)
		assert.Empty(t, risks)
	})
}
