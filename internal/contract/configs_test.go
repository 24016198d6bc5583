package contract

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adlens/adlens/schema"
)

func ptr[T any](v T) *T { return &v }

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError bool
		setupMock   func(*MockWorkspaceSource, string) // Pass the expected working directory
	}{
		{
			name: "valid minimal config",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "invalid model",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            "invalid_model",
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil, // No mock setup needed since validation fails early
		},
		{
			name: "compare mode with both models",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
				BaseModel:        string(schema.FirstTouchModel),
				TargetModel:      string(schema.TimeDecayModel),
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "compare mode missing base model",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
				TargetModel:      string(schema.TimeDecayModel),
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "compare mode same base and target",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
				BaseModel:        string(schema.LinearModel),
				TargetModel:      string(schema.LinearModel),
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "forecast window and points",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				Exclude:          "",
				WorkspacePathStr: ".",
				Flight:           "flight-001",
				Window:           "30 days",
				Points:           14,
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "invalid limit (zero)",
			input: &ConfigRawInput{
				Limit:            0,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid limit (too large)",
			input: &ConfigRawInput{
				Limit:            1001,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid workers (zero)",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          0,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid precision (zero)",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        0,
				Output:           "text",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid precision (too high)",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        5,
				Output:           "text",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid output format",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "invalid_format",
				WorkspacePathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid snapshot backend",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
				SnapshotBackend:  "invalid_backend",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "mysql backend without connection string",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
				SnapshotBackend:  string(schema.MySQLBackend),
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "mysql backend with connection string",
			input: &ConfigRawInput{
				Limit:             10,
				Workers:           4,
				Model:             string(schema.LinearModel),
				Precision:         2,
				Output:            "text",
				WorkspacePathStr:  ".",
				SnapshotBackend:   string(schema.MySQLBackend),
				SnapshotDBConnect: "user:pass@tcp(localhost:3306)/adlens",
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "postgresql backend without dbname",
			input: &ConfigRawInput{
				Limit:             10,
				Workers:           4,
				Model:             string(schema.LinearModel),
				Precision:         2,
				Output:            "text",
				WorkspacePathStr:  ".",
				SnapshotBackend:   string(schema.PostgreSQLBackend),
				SnapshotDBConnect: "host=localhost user=adlens",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "none backend",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
				SnapshotBackend:  string(schema.NoneBackend),
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "sqlite snapshot and analysis sharing a db file",
			input: &ConfigRawInput{
				Limit:             10,
				Workers:           4,
				Model:             string(schema.LinearModel),
				Precision:         2,
				Output:            "text",
				WorkspacePathStr:  ".",
				SnapshotBackend:   string(schema.SQLiteBackend),
				SnapshotDBConnect: "/tmp/shared.db",
				AnalysisBackend:   string(schema.SQLiteBackend),
				AnalysisDBConnect: "/tmp/shared.db",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "relative as-of",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
				AsOf:             "2 days ago",
			},
			expectError: false,
			setupMock: func(mock *MockWorkspaceSource, workDir string) {
				ctx := context.Background()
				mock.On("Resolve", ctx, workDir).Return("/mock/workspace/campaigns.json", nil)
			},
		},
		{
			name: "invalid as-of",
			input: &ConfigRawInput{
				Limit:            10,
				Workers:          4,
				Model:            string(schema.LinearModel),
				Precision:        2,
				Output:           "text",
				WorkspacePathStr: ".",
				AsOf:             "sometime last spring",
			},
			expectError: true,
			setupMock:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSource := new(MockWorkspaceSource)

			// Dynamically determine the expected working directory
			workDir, err := filepath.Abs(".")
			require.NoError(t, err)

			if tt.setupMock != nil {
				tt.setupMock(mockSource, workDir)
			}

			// Set defaults the flag layer would normally provide
			if tt.input.SnapshotBackend == "" {
				tt.input.SnapshotBackend = string(schema.SQLiteBackend)
			}
			if tt.input.Emoji == "" {
				tt.input.Emoji = "no"
			}
			if tt.input.Color == "" {
				tt.input.Color = "no"
			}

			cfg := &Config{}
			ctx := context.Background()
			err = ProcessAndValidate(ctx, cfg, mockSource, tt.input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
				// Basic validation that config was populated
				assert.Equal(t, tt.input.Limit, cfg.ResultLimit)
				assert.Equal(t, schema.AttributionModel(tt.input.Model), cfg.Model)
				assert.Equal(t, "/mock/workspace/campaigns.json", cfg.WorkspacePath)
				require.NotNil(t, cfg.Engine)
				assert.InDelta(t, 0.95, cfg.Engine.SignificanceLevel, 1e-9)
			}

			if tt.setupMock != nil {
				mockSource.AssertExpectations(t)
			}
		})
	}
}

func TestProcessRiskWeightsRaw(t *testing.T) {
	tests := []struct {
		name        string
		weights     RiskWeightsRaw
		validateSum bool
		expectError bool
		expectLen   int
	}{
		{
			name: "full set summing to one",
			weights: RiskWeightsRaw{
				BudgetPacing: ptr(0.40),
				DeliveryGap:  ptr(0.20),
				TimePressure: ptr(0.20),
				Engagement:   ptr(0.10),
				FlightStatus: ptr(0.10),
			},
			validateSum: true,
			expectError: false,
			expectLen:   5,
		},
		{
			name: "bad sum rejected",
			weights: RiskWeightsRaw{
				BudgetPacing: ptr(0.50),
				DeliveryGap:  ptr(0.50),
				TimePressure: ptr(0.50),
			},
			validateSum: true,
			expectError: true,
		},
		{
			name:        "empty input yields empty map",
			weights:     RiskWeightsRaw{},
			validateSum: true,
			expectError: false,
			expectLen:   0,
		},
		{
			name: "partial set skips validation when disabled",
			weights: RiskWeightsRaw{
				BudgetPacing: ptr(0.50),
			},
			validateSum: false,
			expectError: false,
			expectLen:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ProcessRiskWeightsRaw(tt.weights, tt.validateSum)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, result, tt.expectLen)
		})
	}
}

func TestProcessEngineSettingsOverrides(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		Engine: EngineRawInput{
			HalfLife:          ptr("3 days"),
			SignificanceLevel: ptr(0.90),
			AvgOrderValue:     ptr(120.0),
			LookalikeLimit:    ptr(10),
		},
		Weights: RiskWeightsRaw{
			BudgetPacing: ptr(0.40),
			DeliveryGap:  ptr(0.20),
			TimePressure: ptr(0.20),
			Engagement:   ptr(0.10),
			FlightStatus: ptr(0.10),
		},
	}

	require.NoError(t, processEngineSettings(cfg, input))
	require.NotNil(t, cfg.Engine)

	assert.Equal(t, 3*24*time.Hour, cfg.Engine.HalfLife)
	assert.InDelta(t, 0.90, cfg.Engine.SignificanceLevel, 1e-9)
	assert.InDelta(t, 120.0, cfg.Engine.AvgOrderValue, 1e-9)
	assert.Equal(t, 10, cfg.Engine.LookalikeLimit)

	// Defaults survive for anything not overridden
	assert.InDelta(t, 1.5, cfg.Engine.SpendCapRatio, 1e-9)
	assert.InDelta(t, 10.0, cfg.Engine.LiftCap, 1e-9)

	// Custom weights land in both the engine map and the provenance map
	assert.InDelta(t, 0.40, cfg.Engine.RiskWeights[schema.FactorBudgetPacing], 1e-9)
	assert.InDelta(t, 0.40, cfg.CustomRiskWeights[schema.FactorBudgetPacing], 1e-9)
}

func TestProcessEngineSettingsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		input EngineRawInput
	}{
		{"significance above one", EngineRawInput{SignificanceLevel: ptr(1.5)}},
		{"significance at zero", EngineRawInput{SignificanceLevel: ptr(0.0)}},
		{"positive under pacing", EngineRawInput{UnderPacingPct: ptr(5.0)}},
		{"negative over pacing", EngineRawInput{OverPacingPct: ptr(-5.0)}},
		{"spend cap below one", EngineRawInput{SpendCapRatio: ptr(0.5)}},
		{"zero ramp days", EngineRawInput{RampDays: ptr(0.0)}},
		{"negative order value", EngineRawInput{AvgOrderValue: ptr(-1.0)}},
		{"zero lookalike limit", EngineRawInput{LookalikeLimit: ptr(0)}},
		{"garbage half life", EngineRawInput{HalfLife: ptr("soonish")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := processEngineSettings(cfg, &ConfigRawInput{Engine: tt.input})
			assert.Error(t, err)
		})
	}
}

func TestParseCheckThresholdsString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    map[schema.CheckSignal]float64
	}{
		{
			name:  "both signals",
			input: "risk:60,pacing:20",
			expected: map[schema.CheckSignal]float64{
				schema.RiskSignal:   60,
				schema.PacingSignal: 20,
			},
		},
		{
			name:  "pace alias with spaces",
			input: " pace : 30 ",
			expected: map[schema.CheckSignal]float64{
				schema.PacingSignal: 30,
			},
		},
		{
			name:        "missing value",
			input:       "risk",
			expectError: true,
		},
		{
			name:        "unknown signal",
			input:       "velocity:10",
			expectError: true,
		},
		{
			name:        "non numeric value",
			input:       "risk:high",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseCheckThresholdsString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProcessCheckThresholdsPrecedence(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		Checks:        CheckRawInput{Risk: ptr(80.0), Pacing: ptr(30.0)},
		ThresholdsStr: "risk:65",
	}

	require.NoError(t, processCheckThresholds(cfg, input))

	// Flag override wins for risk, config file value stands for pacing
	assert.InDelta(t, 65.0, cfg.CheckThresholds[schema.RiskSignal], 1e-9)
	assert.InDelta(t, 30.0, cfg.CheckThresholds[schema.PacingSignal], 1e-9)
}

func TestProcessCheckThresholdsDedicatedFlags(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		ThresholdsStr:   "risk:65,pacing:20",
		MaxRisk:         55,
		MaxPaceVariance: 18,
	}

	require.NoError(t, processCheckThresholds(cfg, input))

	// --max-risk and --max-pace-variance outrank the combined string
	assert.InDelta(t, 55.0, cfg.CheckThresholds[schema.RiskSignal], 1e-9)
	assert.InDelta(t, 18.0, cfg.CheckThresholds[schema.PacingSignal], 1e-9)
}

func TestProcessExpansionInputs(t *testing.T) {
	tests := []struct {
		name        string
		input       ConfigRawInput
		expectError bool
	}{
		{"all goals set", ConfigRawInput{TargetReach: 500000, TargetCPA: 12.5, TargetCVR: 2.0, TargetConversions: 800}, false},
		{"unset goals pass", ConfigRawInput{}, false},
		{"negative reach", ConfigRawInput{TargetReach: -1}, true},
		{"negative cpa", ConfigRawInput{TargetCPA: -0.5}, true},
		{"negative cvr", ConfigRawInput{TargetCVR: -2}, true},
		{"negative conversions", ConfigRawInput{TargetConversions: -10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := processExpansionInputs(cfg, &tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.TargetReach, cfg.TargetReach)
			assert.InDelta(t, tt.input.TargetCPA, cfg.TargetCPA, 1e-9)
			assert.InDelta(t, tt.input.TargetCVR, cfg.TargetCVR, 1e-9)
			assert.InDelta(t, tt.input.TargetConversions, cfg.TargetConversions, 1e-9)
		})
	}
}

func TestValidateSimpleInputsAllModels(t *testing.T) {
	cfg := &Config{}
	input := &ConfigRawInput{
		Limit:           10,
		Workers:         4,
		Precision:       2,
		Output:          "text",
		SnapshotBackend: string(schema.SQLiteBackend),
		Emoji:           "no",
		Color:           "no",
		Compare:         true,
	}

	require.NoError(t, validateSimpleInputs(cfg, input))
	assert.True(t, cfg.AllModels)
}

func TestConfigClone(t *testing.T) {
	original := &Config{
		WorkspacePath: "/data/campaigns.json",
		Model:         schema.LinearModel,
		Excludes:      []string{"flight-legacy"},
		Engine:        DefaultEngineSettings(),
		CheckThresholds: map[schema.CheckSignal]float64{
			schema.RiskSignal: 70,
		},
		CustomRiskWeights: map[schema.FactorKey]float64{
			schema.FactorBudgetPacing: 0.40,
		},
	}

	clone := original.Clone()
	clone.Excludes[0] = "changed"
	clone.Engine.RiskWeights[schema.FactorBudgetPacing] = 0.99
	clone.CheckThresholds[schema.RiskSignal] = 10
	clone.CustomRiskWeights[schema.FactorBudgetPacing] = 0.01

	assert.Equal(t, "flight-legacy", original.Excludes[0])
	assert.InDelta(t, 0.30, original.Engine.RiskWeights[schema.FactorBudgetPacing], 1e-9)
	assert.InDelta(t, 70.0, original.CheckThresholds[schema.RiskSignal], 1e-9)
	assert.InDelta(t, 0.40, original.CustomRiskWeights[schema.FactorBudgetPacing], 1e-9)
}

func TestCloneWithNow(t *testing.T) {
	anchor := time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC)
	original := &Config{Now: anchor, Engine: DefaultEngineSettings()}

	later := anchor.Add(48 * time.Hour)
	clone := original.CloneWithNow(later)

	assert.Equal(t, anchor, original.Now)
	assert.Equal(t, later, clone.Now)
}

func TestGetAnalysisTime(t *testing.T) {
	cfg := &Config{Now: time.Date(2025, time.June, 15, 13, 45, 27, 500, time.UTC)}
	assert.Equal(t, time.Date(2025, time.June, 15, 13, 0, 0, 0, time.UTC), cfg.GetAnalysisTime())
}

func TestDefaultEngineSettings(t *testing.T) {
	set := DefaultEngineSettings()

	assert.Equal(t, 7*24*time.Hour, set.HalfLife)
	assert.InDelta(t, 0.95, set.SignificanceLevel, 1e-9)
	assert.InDelta(t, 50.0, set.AvgOrderValue, 1e-9)
	assert.Equal(t, 5, set.LookalikeLimit)

	sum := 0.0
	for _, w := range set.RiskWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
