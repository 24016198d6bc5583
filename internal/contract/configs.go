package contract

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/adlens/adlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultCurvePoints = 14
	MaxCurvePoints     = 90
)

// SnapshotGranularity defines the time granularity for snapshotting analysis results.
// This ensures consistent snapshot key generation and anchor time alignment across
// the application and tests.
const SnapshotGranularity = time.Hour

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// EngineSettings holds the tunable constants behind every engine computation.
// Build instances with DefaultEngineSettings and override fields from raw
// config input rather than constructing the struct literally.
type EngineSettings struct {
	// Attribution
	HalfLife time.Duration // time decay half life for attribution credit

	// Incrementality
	SignificanceLevel  float64 // minimum confidence for a significant lift
	LiftCap            float64 // reported lift when the control group never converts
	SmallLiftThreshold float64 // |lift| below this recommends holding spend steady

	// Budget pacing
	UnderPacingPct    float64 // variance at or below this is under pacing (negative)
	OverPacingPct     float64 // variance at or above this is over pacing
	PacingAlertPct    float64 // |variance| above this raises an alert
	PacingCriticalPct float64 // |variance| above this escalates to critical
	SpendCapRatio     float64 // projected spend cap as a multiple of budget

	// Performance prediction
	TrendBandPct      float64 // band around the goal rate that still counts as stable
	RampDays          float64 // days of history for full prediction confidence
	GoalAlertRatio    float64 // projected/goal at or below this raises an alert
	GoalCriticalRatio float64 // projected/goal at or below this escalates to critical

	// Delivery risk
	RiskWeights  map[schema.FactorKey]float64
	RiskCritical float64
	RiskHigh     float64
	RiskMedium   float64

	// Opportunities
	OpportunityAlertScore float64 // opportunity score at or above this raises an alert

	// Audience overlap
	AvgOrderValue     float64 // revenue per conversion when deriving segment ROAS
	LookalikeMinScore float64 // similarity floor for lookalike matches
	LookalikeLimit    int     // max lookalike matches returned
}

// DefaultEngineSettings returns the engine tunables every analysis starts from.
func DefaultEngineSettings() *EngineSettings {
	return &EngineSettings{
		HalfLife:              7 * 24 * time.Hour,
		SignificanceLevel:     0.95,
		LiftCap:               10.0,
		SmallLiftThreshold:    0.05,
		UnderPacingPct:        -15.0,
		OverPacingPct:         15.0,
		PacingAlertPct:        20.0,
		PacingCriticalPct:     40.0,
		SpendCapRatio:         1.5,
		TrendBandPct:          10.0,
		RampDays:              7.0,
		GoalAlertRatio:        0.8,
		GoalCriticalRatio:     0.6,
		RiskWeights:           schema.GetDefaultRiskWeights(),
		RiskCritical:          70.0,
		RiskHigh:              50.0,
		RiskMedium:            30.0,
		OpportunityAlertScore: 70.0,
		AvgOrderValue:         50.0,
		LookalikeMinScore:     30.0,
		LookalikeLimit:        5,
	}
}

// Clone returns a deep copy of the EngineSettings struct.
func (s *EngineSettings) Clone() *EngineSettings {
	clone := *s
	if s.RiskWeights != nil {
		clone.RiskWeights = make(map[schema.FactorKey]float64)
		maps.Copy(clone.RiskWeights, s.RiskWeights)
	}
	return &clone
}

// RiskWeightsRaw holds custom delivery risk factor weights from the YAML config file.
// Only fields that might be customized are included. Use float64 pointers for optional fields.
type RiskWeightsRaw struct {
	BudgetPacing *float64 `mapstructure:"budget_pacing"`
	DeliveryGap  *float64 `mapstructure:"delivery_gap"`
	TimePressure *float64 `mapstructure:"time_pressure"`
	Engagement   *float64 `mapstructure:"engagement"`
	FlightStatus *float64 `mapstructure:"flight_status"`
}

// EngineRawInput holds engine tunable overrides from the YAML config file.
// Use pointers for optional fields so absence is distinguishable from zero.
type EngineRawInput struct {
	HalfLife           *string  `mapstructure:"half_life"`
	SignificanceLevel  *float64 `mapstructure:"significance_level"`
	SmallLiftThreshold *float64 `mapstructure:"small_lift_threshold"`
	UnderPacingPct     *float64 `mapstructure:"under_pacing_pct"`
	OverPacingPct      *float64 `mapstructure:"over_pacing_pct"`
	PacingAlertPct     *float64 `mapstructure:"pacing_alert_pct"`
	PacingCriticalPct  *float64 `mapstructure:"pacing_critical_pct"`
	SpendCapRatio      *float64 `mapstructure:"spend_cap_ratio"`
	RampDays           *float64 `mapstructure:"ramp_days"`
	AvgOrderValue      *float64 `mapstructure:"avg_order_value"`
	LookalikeMinScore  *float64 `mapstructure:"lookalike_min_score"`
	LookalikeLimit     *int     `mapstructure:"lookalike_limit"`
}

// CheckRawInput holds policy check threshold definitions from the YAML config file.
type CheckRawInput struct {
	Risk   *float64 `mapstructure:"risk"`
	Pacing *float64 `mapstructure:"pacing"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	WorkspacePath string
	Now           time.Time // analysis anchor, defaults to the wall clock

	Model       schema.AttributionModel
	AllModels   bool // render every model side by side in attribution output
	CompareMode bool
	BaseModel   schema.AttributionModel
	TargetModel schema.AttributionModel

	ResultLimit int
	Workers     int
	Excludes    []string
	Detail      bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	SeedSegment string // lookalike seed segment ID

	FlightFilter string        // restrict forecast output to one flight ID
	CurvePoints  int           // spend curve resolution
	CurveWindow  time.Duration // spend curve horizon

	// Expansion goals for the expand command; zero means the goal is unset
	TargetReach       int64
	TargetCPA         float64
	TargetCVR         float64
	TargetConversions float64

	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext
	NoSnapshot        bool

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	// Engine is the final tunable set for all computations, built from
	// defaults plus custom overrides
	Engine *EngineSettings

	// CustomRiskWeights holds only the user-provided risk weight overrides,
	// kept separate so output layers can flag which weights are custom
	CustomRiskWeights map[schema.FactorKey]float64

	// CheckThresholds is a mapping of [CheckSignal] = maximum tolerated value
	CheckThresholds map[schema.CheckSignal]float64

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	WorkspacePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	AsOf              string `mapstructure:"as-of"`
	Workers           int    `mapstructure:"workers"`
	Model             string `mapstructure:"model"`
	Exclude           string `mapstructure:"exclude"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Detail            bool   `mapstructure:"detail"`
	Width             int    `mapstructure:"width"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	NoSnapshot        bool   `mapstructure:"no-snapshot"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`
	Emoji             string `mapstructure:"emoji"`
	Color             string `mapstructure:"color"`

	// --- Fields from attributionCmd.Flags() ---
	Compare bool `mapstructure:"compare"`

	// --- Fields from compareCmd.Flags() ---
	BaseModel   string `mapstructure:"base-model"`
	TargetModel string `mapstructure:"target-model"`

	// --- Fields from lookalikeCmd.Flags() ---
	Segment string `mapstructure:"segment"`

	// --- Fields from forecastCmd.Flags() ---
	Flight string `mapstructure:"flight"`
	Points int    `mapstructure:"points"`
	Window string `mapstructure:"window"`

	// --- Fields from expandCmd.Flags() ---
	TargetReach       int64   `mapstructure:"target-reach"`
	TargetCPA         float64 `mapstructure:"target-cpa"`
	TargetCVR         float64 `mapstructure:"target-cvr"`
	TargetConversions float64 `mapstructure:"target-conversions"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr   string  `mapstructure:"thresholds-override"`
	MaxRisk         float64 `mapstructure:"max-risk"`
	MaxPaceVariance float64 `mapstructure:"max-pace-variance"`

	// --- Engine tunables from config file ---
	Engine EngineRawInput `mapstructure:"engine"`

	// --- Risk weights from config file ---
	Weights RiskWeightsRaw `mapstructure:"weights"`

	// --- Policy check thresholds from config file ---
	Checks CheckRawInput `mapstructure:"checks"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.Engine != nil {
		clone.Engine = c.Engine.Clone()
	}
	if c.CustomRiskWeights != nil {
		clone.CustomRiskWeights = make(map[schema.FactorKey]float64)
		maps.Copy(clone.CustomRiskWeights, c.CustomRiskWeights)
	}
	if c.CheckThresholds != nil {
		clone.CheckThresholds = make(map[schema.CheckSignal]float64)
		maps.Copy(clone.CheckThresholds, c.CheckThresholds)
	}
	return &clone
}

// CloneWithNow creates a copy of the Config and sets a new anchor time.
func (c *Config) CloneWithNow(now time.Time) *Config {
	clone := c.Clone()
	clone.Now = now
	return clone
}

// GetAnalysisTime returns the configured anchor time, truncated to the snapshot
// granularity. This ensures consistent snapshot keys across the application and tests.
func (c *Config) GetAnalysisTime() time.Time {
	return c.Now.Truncate(SnapshotGranularity)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, source WorkspaceSource, input *ConfigRawInput) error {
	// All validation functions now read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAnchorTime(cfg, input); err != nil {
		return err
	}
	if err := processModelInputs(cfg, input); err != nil {
		return err
	}
	if err := processForecastInputs(cfg, input); err != nil {
		return err
	}
	if err := processExpansionInputs(cfg, input); err != nil {
		return err
	}
	if err := processEngineSettings(cfg, input); err != nil {
		return err
	}
	if err := processCheckThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveWorkspacePath(ctx, cfg, source, input); err != nil {
		return err
	}
	return nil
}

// RevalidateModel validates an attribution model supplied at request time.
// MCP tool calls bypass the CLI's ProcessAndValidate pass, so parameters that
// arrive per request are checked again here.
func RevalidateModel(cfg *Config, modelStr string) error {
	if modelStr == "" {
		return nil
	}
	model := schema.AttributionModel(strings.ToLower(modelStr))
	if _, ok := schema.ValidAttributionModels[model]; !ok {
		return fmt.Errorf("invalid model '%s'. must be first_touch, last_touch, linear, time_decay, position_based", modelStr)
	}
	cfg.Model = model
	return nil
}

// RevalidateAnchor parses an anchor time supplied at request time, accepting
// the same absolute and relative forms as the --as-of flag.
func RevalidateAnchor(cfg *Config, asOf string) error {
	if asOf == "" {
		return nil
	}
	t, err := time.Parse(DateTimeFormat, asOf)
	if err == nil {
		cfg.Now = t
		return nil
	}
	t, relErr := ParseRelativeTime(asOf, time.Now())
	if relErr != nil {
		return fmt.Errorf("invalid as-of date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", asOf, err)
	}
	cfg.Now = t
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates snapshot and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Snapshot Backend Validation ---
	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidStoreBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect); err != nil {
		return err
	}
	cfg.NoSnapshot = input.NoSnapshot

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend != "" {
		if _, ok := schema.ValidStoreBackends[cfg.AnalysisBackend]; !ok {
			return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
		}
		cfg.AnalysisDBConnect = input.AnalysisDBConnect
		if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return err
		}

		// Validate that snapshot and analysis use different databases
		if cfg.SnapshotBackend == cfg.AnalysisBackend && cfg.SnapshotBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.SnapshotBackend == schema.SQLiteBackend {
				snapshotDBPath := cfg.SnapshotDBConnect
				if snapshotDBPath == "" {
					snapshotDBPath = GetSnapshotDBFilePath()
				}
				analysisDBPath := cfg.AnalysisDBConnect
				if analysisDBPath == "" {
					analysisDBPath = GetAnalysisDBFilePath()
				}
				if snapshotDBPath == analysisDBPath {
					return fmt.Errorf("snapshot and analysis storage must use different SQLite database files. Both resolve to %q", snapshotDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.SeedSegment = strings.TrimSpace(input.Segment)
	cfg.AllModels = input.Compare

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 4. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	// --- 5. Excludes Processing ---
	// Unlike path excludes there are no sensible defaults here; entries are
	// flight or segment IDs the user wants out of every scan.
	cfg.Excludes = nil
	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processAnchorTime handles the analysis anchor date parsing.
// Pacing, projections and risk all measure elapsed time against this anchor,
// so pinning it makes runs reproducible.
func processAnchorTime(cfg *Config, input *ConfigRawInput) error {
	now := time.Now()
	cfg.Now = now

	if input.AsOf != "" {
		t, err := time.Parse(DateTimeFormat, input.AsOf)
		if err == nil {
			cfg.Now = t
		} else {
			t, relErr := ParseRelativeTime(input.AsOf, now)
			if relErr != nil {
				return fmt.Errorf("invalid as-of date format for '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.AsOf, err)
			}
			cfg.Now = t
		}
	}

	return nil
}

// processModelInputs handles the attribution model selection and comparison refs.
func processModelInputs(cfg *Config, input *ConfigRawInput) error {
	// --- Model Validation ---
	cfg.Model = schema.AttributionModel(strings.ToLower(input.Model))
	if _, ok := schema.ValidAttributionModels[cfg.Model]; !ok {
		return fmt.Errorf("invalid model '%s'. must be first_touch, last_touch, linear, time_decay, position_based", input.Model)
	}

	// --- Comparison Refs ---
	baseStr := strings.TrimSpace(input.BaseModel)
	targetStr := strings.TrimSpace(input.TargetModel)

	if baseStr == "" && targetStr == "" {
		cfg.CompareMode = false
		return nil
	}
	cfg.CompareMode = true

	if baseStr == "" {
		return fmt.Errorf("must specify --base-model when running the compare command")
	}
	cfg.BaseModel = schema.AttributionModel(strings.ToLower(baseStr))
	if _, ok := schema.ValidAttributionModels[cfg.BaseModel]; !ok {
		return fmt.Errorf("invalid base model '%s'. must be first_touch, last_touch, linear, time_decay, position_based", baseStr)
	}

	if targetStr == "" {
		cfg.TargetModel = cfg.Model
	} else {
		cfg.TargetModel = schema.AttributionModel(strings.ToLower(targetStr))
		if _, ok := schema.ValidAttributionModels[cfg.TargetModel]; !ok {
			return fmt.Errorf("invalid target model '%s'. must be first_touch, last_touch, linear, time_decay, position_based", targetStr)
		}
	}

	if cfg.BaseModel == cfg.TargetModel {
		return fmt.Errorf("base and target models must differ (both are %s)", cfg.BaseModel)
	}

	return nil
}

// processForecastInputs handles the forecast parameters.
func processForecastInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.FlightFilter = strings.TrimSpace(input.Flight)
	cfg.CurvePoints = input.Points

	if input.Window != "" {
		window, err := ParseLookbackDuration(input.Window)
		if err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
		cfg.CurveWindow = window
	}

	// Basic validation
	if cfg.CurvePoints < 1 && cfg.CurvePoints != 0 {
		return fmt.Errorf("--points must be at least 1")
	}
	if cfg.CurvePoints > MaxCurvePoints {
		return fmt.Errorf("--points cannot exceed %d (received %d)", MaxCurvePoints, cfg.CurvePoints)
	}

	return nil
}

// processExpansionInputs handles the audience expansion goal flags.
// Zero values mean the goal is unset; negative values are rejected.
func processExpansionInputs(cfg *Config, input *ConfigRawInput) error {
	if input.TargetReach < 0 {
		return fmt.Errorf("--target-reach cannot be negative (received %d)", input.TargetReach)
	}
	if input.TargetCPA < 0 {
		return fmt.Errorf("--target-cpa cannot be negative (received %.2f)", input.TargetCPA)
	}
	if input.TargetCVR < 0 {
		return fmt.Errorf("--target-cvr cannot be negative (received %.2f)", input.TargetCVR)
	}
	if input.TargetConversions < 0 {
		return fmt.Errorf("--target-conversions cannot be negative (received %.2f)", input.TargetConversions)
	}

	cfg.TargetReach = input.TargetReach
	cfg.TargetCPA = input.TargetCPA
	cfg.TargetCVR = input.TargetCVR
	cfg.TargetConversions = input.TargetConversions
	return nil
}

// ProcessRiskWeightsRaw converts RiskWeightsRaw into the final weights map.
// If validateSum is true, it validates that the provided weights sum to 1.0.
func ProcessRiskWeightsRaw(weights RiskWeightsRaw, validateSum bool) (map[schema.FactorKey]float64, error) {
	result := make(map[schema.FactorKey]float64)
	sum := 0.0

	if weights.BudgetPacing != nil {
		result[schema.FactorBudgetPacing] = *weights.BudgetPacing
		sum += *weights.BudgetPacing
	}
	if weights.DeliveryGap != nil {
		result[schema.FactorDeliveryGap] = *weights.DeliveryGap
		sum += *weights.DeliveryGap
	}
	if weights.TimePressure != nil {
		result[schema.FactorTimePressure] = *weights.TimePressure
		sum += *weights.TimePressure
	}
	if weights.Engagement != nil {
		result[schema.FactorEngagement] = *weights.Engagement
		sum += *weights.Engagement
	}
	if weights.FlightStatus != nil {
		result[schema.FactorFlightStatus] = *weights.FlightStatus
		sum += *weights.FlightStatus
	}

	if len(result) > 0 && validateSum && (sum < 0.999 || sum > 1.001) {
		return nil, fmt.Errorf("custom risk weights must sum to 1.0, got %.3f", sum)
	}

	return result, nil
}

// processEngineSettings builds the final engine tunables from defaults plus
// config file overrides, then layers custom risk weights on top.
func processEngineSettings(cfg *Config, input *ConfigRawInput) error {
	set := DefaultEngineSettings()

	if input.Engine.HalfLife != nil {
		halfLife, err := ParseLookbackDuration(*input.Engine.HalfLife)
		if err != nil {
			return fmt.Errorf("invalid engine half_life: %w", err)
		}
		set.HalfLife = halfLife
	}
	if input.Engine.SignificanceLevel != nil {
		v := *input.Engine.SignificanceLevel
		if v <= 0.0 || v >= 1.0 {
			return fmt.Errorf("engine significance_level must be between 0 and 1 exclusive (received %.3f)", v)
		}
		set.SignificanceLevel = v
	}
	if input.Engine.SmallLiftThreshold != nil {
		v := *input.Engine.SmallLiftThreshold
		if v < 0.0 {
			return fmt.Errorf("engine small_lift_threshold cannot be negative (received %.3f)", v)
		}
		set.SmallLiftThreshold = v
	}
	if input.Engine.UnderPacingPct != nil {
		v := *input.Engine.UnderPacingPct
		if v >= 0.0 {
			return fmt.Errorf("engine under_pacing_pct must be negative (received %.1f)", v)
		}
		set.UnderPacingPct = v
	}
	if input.Engine.OverPacingPct != nil {
		v := *input.Engine.OverPacingPct
		if v <= 0.0 {
			return fmt.Errorf("engine over_pacing_pct must be positive (received %.1f)", v)
		}
		set.OverPacingPct = v
	}
	if input.Engine.PacingAlertPct != nil {
		v := *input.Engine.PacingAlertPct
		if v <= 0.0 {
			return fmt.Errorf("engine pacing_alert_pct must be positive (received %.1f)", v)
		}
		set.PacingAlertPct = v
	}
	if input.Engine.PacingCriticalPct != nil {
		v := *input.Engine.PacingCriticalPct
		if v <= set.PacingAlertPct {
			return fmt.Errorf("engine pacing_critical_pct must exceed pacing_alert_pct %.1f (received %.1f)", set.PacingAlertPct, v)
		}
		set.PacingCriticalPct = v
	}
	if input.Engine.SpendCapRatio != nil {
		v := *input.Engine.SpendCapRatio
		if v < 1.0 {
			return fmt.Errorf("engine spend_cap_ratio must be at least 1.0 (received %.2f)", v)
		}
		set.SpendCapRatio = v
	}
	if input.Engine.RampDays != nil {
		v := *input.Engine.RampDays
		if v <= 0.0 {
			return fmt.Errorf("engine ramp_days must be positive (received %.1f)", v)
		}
		set.RampDays = v
	}
	if input.Engine.AvgOrderValue != nil {
		v := *input.Engine.AvgOrderValue
		if v <= 0.0 {
			return fmt.Errorf("engine avg_order_value must be positive (received %.2f)", v)
		}
		set.AvgOrderValue = v
	}
	if input.Engine.LookalikeMinScore != nil {
		v := *input.Engine.LookalikeMinScore
		if v < 0.0 || v > 100.0 {
			return fmt.Errorf("engine lookalike_min_score must be between 0 and 100 (received %.1f)", v)
		}
		set.LookalikeMinScore = v
	}
	if input.Engine.LookalikeLimit != nil {
		v := *input.Engine.LookalikeLimit
		if v < 1 {
			return fmt.Errorf("engine lookalike_limit must be at least 1 (received %d)", v)
		}
		set.LookalikeLimit = v
	}

	// Custom risk weights replace the defaults wholesale once validated
	custom, err := ProcessRiskWeightsRaw(input.Weights, true)
	if err != nil {
		return err
	}
	if len(custom) > 0 {
		cfg.CustomRiskWeights = custom
		maps.Copy(set.RiskWeights, custom)
	}

	cfg.Engine = set
	return nil
}

// processCheckThresholds converts the raw threshold input into the final cfg.CheckThresholds map.
// If no thresholds are provided in the config, it initializes with default values.
// Command-line --thresholds-override flag takes precedence over config file settings.
func processCheckThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := make(map[schema.CheckSignal]float64)

	// Set defaults first
	thresholds[schema.RiskSignal] = 70.0
	thresholds[schema.PacingSignal] = 25.0

	// Override with config file values if provided
	if input.Checks.Risk != nil {
		thresholds[schema.RiskSignal] = *input.Checks.Risk
	}
	if input.Checks.Pacing != nil {
		thresholds[schema.PacingSignal] = *input.Checks.Pacing
	}

	// Override with command-line flag if provided (takes precedence)
	if input.ThresholdsStr != "" {
		parsedThresholds, err := parseCheckThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds format: %w", err)
		}
		// Merge parsed values
		maps.Copy(thresholds, parsedThresholds)
	}

	// Dedicated per-signal flags take final precedence
	if input.MaxRisk > 0 {
		thresholds[schema.RiskSignal] = input.MaxRisk
	}
	if input.MaxPaceVariance > 0 {
		thresholds[schema.PacingSignal] = input.MaxPaceVariance
	}

	// Validate thresholds
	if v := thresholds[schema.RiskSignal]; v < 0.0 || v > 100.0 {
		return fmt.Errorf("risk threshold must be between 0.0 and 100.0 (received %.2f)", v)
	}
	if v := thresholds[schema.PacingSignal]; v < 0.0 {
		return fmt.Errorf("pacing threshold cannot be negative (received %.2f)", v)
	}

	cfg.CheckThresholds = thresholds
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveWorkspacePath resolves the workspace path through the source.
func resolveWorkspacePath(ctx context.Context, cfg *Config, source WorkspaceSource, input *ConfigRawInput) error {
	searchPath := input.WorkspacePathStr
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	resolved, err := source.Resolve(ctx, absSearchPath)
	if err != nil {
		return err
	}
	cfg.WorkspacePath = resolved

	return nil
}

// parseCheckThresholdsString parses a string like "risk:70,pacing:25"
// into a map of CheckSignal to float64.
func parseCheckThresholdsString(s string) (map[schema.CheckSignal]float64, error) {
	thresholds := make(map[schema.CheckSignal]float64)

	if s == "" {
		return thresholds, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'signal:value'", part)
		}

		signalStr := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		var signal schema.CheckSignal
		switch strings.ToLower(signalStr) {
		case "risk":
			signal = schema.RiskSignal
		case "pacing", "pace":
			signal = schema.PacingSignal
		default:
			return nil, fmt.Errorf("invalid signal '%s', must be risk or pacing", signalStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for signal %s: %w", valueStr, signal, err)
		}

		thresholds[signal] = value
	}

	return thresholds, nil
}
