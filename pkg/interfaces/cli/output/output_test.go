package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/supplycover/pkg/application/dto"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/services/validation"
)

var start = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func sampleReport() *dto.CoverageReport {
	return &dto.CoverageReport{
		Role:          entities.CustomerRole,
		Material:      "MNR-7307-AU340474.002",
		Partner:       "BPNL4444444444XX",
		Site:          "BPNS1234567890ZZ",
		Start:         start,
		InitialStock:  20,
		Demand:        []float64{10, 10},
		Replenishment: []float64{0, 2.5},
		Results: []entities.CoverageResult{
			{Material: "MNR-7307-AU340474.002", Day: start, DaysOfSupply: 2},
			{Material: "MNR-7307-AU340474.002", Day: start.AddDate(0, 0, 1), DaysOfSupply: 0.25},
		},
	}
}

func TestWriteCoverage(t *testing.T) {
	report := sampleReport()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverage(&buf, report, Config{Format: "text"}))
		out := buf.String()
		assert.Contains(t, out, "Days of supply: MNR-7307-AU340474.002 (customer)")
		assert.Contains(t, out, "Initial Stock: 20")
		assert.Contains(t, out, "2025-06-03")
		assert.Contains(t, out, "0.25 ⚠️")
	})

	t.Run("csv without series", func(t *testing.T) {
		cached := sampleReport()
		cached.Demand, cached.Replenishment = nil, nil
		var buf bytes.Buffer
		require.NoError(t, WriteCoverage(&buf, cached, Config{Format: "csv"}))
		assert.Contains(t, buf.String(), "2025-06-02,-,-,2")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverage(&buf, report, Config{Format: "json"}))
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "customer", decoded["role"])
		assert.Len(t, decoded["results"], 2)
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverage(&buf, report, Config{Format: "csv"}))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.Equal(t, []string{
			"day,demand,replenishment,days_of_supply",
			"2025-06-02,10,0,2",
			"2025-06-03,10,2.5,0.25",
		}, lines)
	})

	t.Run("svg", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteCoverage(&buf, report, Config{Format: "svg"}))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "<svg"))
		assert.Equal(t, 2, strings.Count(out, `class="coverage-bar"`))
		assert.Contains(t, out, "#F44336")
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, WriteCoverage(&bytes.Buffer{}, report, Config{Format: "xml"}))
	})
}

func TestWriteCoverage_ToOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var buf bytes.Buffer
	require.NoError(t, WriteCoverage(&buf, sampleReport(), Config{Format: "csv", OutputDir: dir, Verbose: true}))

	data, err := os.ReadFile(filepath.Join(dir, "coverage.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "days_of_supply")
	assert.Contains(t, buf.String(), "coverage.csv")
}

func TestWriteQuantities(t *testing.T) {
	report := &dto.QuantityReport{Kind: entities.KindDemand, Start: start, Quantities: []float64{1.5, 0, 3}}

	var buf bytes.Buffer
	require.NoError(t, WriteQuantities(&buf, report, Config{Format: "csv"}))
	assert.Equal(t, "day,quantity\n2025-06-02,1.5\n2025-06-03,0\n2025-06-04,3\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteQuantities(&buf, report, Config{Format: "text"}))
	assert.Contains(t, buf.String(), "demand quantities for all materials")
}

func TestWriteValidation(t *testing.T) {
	invalidID := uuid.New()
	results := []validation.Result{
		{RecordID: uuid.New(), Kind: entities.KindStock},
		{RecordID: invalidID, Kind: entities.KindDemand, Errors: []string{"Missing Material.", "Missing day."}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteValidation(&buf, results, Config{Format: "text"}))
	out := buf.String()
	assert.Contains(t, out, "❌ demand "+invalidID.String())
	assert.Contains(t, out, "   - Missing day.")
	assert.Contains(t, out, "1 of 2 records valid")
	assert.NotContains(t, out, "✅")

	buf.Reset()
	require.NoError(t, WriteValidation(&buf, results, Config{Format: "csv"}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)

	buf.Reset()
	require.NoError(t, WriteValidation(&buf, results, Config{Format: "json"}))
	assert.Contains(t, buf.String(), `"kind": "demand"`)
}

func TestCoverageChart_Empty(t *testing.T) {
	report := &dto.CoverageReport{Role: entities.SupplierRole}
	svg := NewCoverageChart(report).GenerateSVG(report)
	assert.Contains(t, svg, "Empty Horizon")
}
