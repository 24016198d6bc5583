package schema

// Custom string types for type safety.
type (
	// AttributionModel represents the rule used to split conversion credit.
	AttributionModel string

	// ChannelType represents the kind of marketing channel a touchpoint ran on.
	ChannelType string

	// FlightStatus represents the lifecycle state of a campaign or flight.
	FlightStatus string

	// SegmentCategory represents the targeting category of an audience segment.
	SegmentCategory string

	// RecommendedAction represents the verdict of an incrementality test.
	RecommendedAction string

	// PacingStatus represents how actual spend tracks the ideal spend line.
	PacingStatus string

	// AlertSeverity represents how urgent a predictive alert is.
	AlertSeverity string

	// AlertType represents which analysis produced a predictive alert.
	AlertType string

	// RiskLevel represents the banded delivery risk of a flight.
	RiskLevel string

	// OpportunityType represents the heuristic family of an opportunity.
	OpportunityType string

	// PredictionMetric represents the flight metric a projection runs over.
	PredictionMetric string

	// TrendDirection represents how a projected metric moves against its goal.
	TrendDirection string

	// Priority represents the urgency of an expansion recommendation.
	Priority string

	// FactorKey represents keys used in delivery risk breakdowns.
	FactorKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All attribution models supported.
const (
	FirstTouchModel    AttributionModel = "first_touch"
	LastTouchModel     AttributionModel = "last_touch"
	LinearModel        AttributionModel = "linear" // default
	TimeDecayModel     AttributionModel = "time_decay"
	PositionBasedModel AttributionModel = "position_based"
)

// All channel types supported.
const (
	SearchChannel    ChannelType = "search"
	SocialChannel    ChannelType = "social"
	DisplayChannel   ChannelType = "display"
	VideoChannel     ChannelType = "video"
	EmailChannel     ChannelType = "email"
	AffiliateChannel ChannelType = "affiliate"
	OrganicChannel   ChannelType = "organic"
	DirectChannel    ChannelType = "direct"
)

// All flight statuses supported.
const (
	DraftStatus     FlightStatus = "draft"
	ScheduledStatus FlightStatus = "scheduled"
	ActiveStatus    FlightStatus = "active"
	PausedStatus    FlightStatus = "paused"
	CompletedStatus FlightStatus = "completed"
	ArchivedStatus  FlightStatus = "archived"
)

// All segment categories supported.
const (
	DemographicsCategory SegmentCategory = "demographics"
	BehavioralCategory   SegmentCategory = "behavioral"
	InterestCategory     SegmentCategory = "interest"
	B2BCategory          SegmentCategory = "b2b"
	ContextualCategory   SegmentCategory = "contextual"
	FirstPartyCategory   SegmentCategory = "first_party"
	PixelBasedCategory   SegmentCategory = "pixel_based"
)

// All incrementality recommendations supported.
const (
	ScaleUpAction        RecommendedAction = "scale_up"
	ScaleDownAction      RecommendedAction = "scale_down"
	MaintainAction       RecommendedAction = "maintain"
	MoreDataNeededAction RecommendedAction = "more_data_needed"
)

// All pacing statuses supported.
const (
	UnderPacing PacingStatus = "under_pacing"
	OnTrack     PacingStatus = "on_track"
	OverPacing  PacingStatus = "over_pacing"
)

// All alert severities supported, ordered most urgent first.
const (
	CriticalSeverity AlertSeverity = "critical"
	WarningSeverity  AlertSeverity = "warning"
	InfoSeverity     AlertSeverity = "info"
)

// All alert types supported.
const (
	PacingAlert      AlertType = "pacing"
	PerformanceAlert AlertType = "performance"
	RiskAlert        AlertType = "risk"
	OpportunityAlert AlertType = "opportunity"
)

// All risk levels supported.
const (
	LowRisk      RiskLevel = "low"
	MediumRisk   RiskLevel = "medium"
	HighRisk     RiskLevel = "high"
	CriticalRisk RiskLevel = "critical"
)

// All opportunity types supported.
const (
	BudgetReallocation OpportunityType = "budget_reallocation"
	AudienceExpansion  OpportunityType = "audience_expansion"
	CreativeRefresh    OpportunityType = "creative_refresh"
)

// All prediction metrics supported.
const (
	ImpressionsMetric PredictionMetric = "impressions"
	ClicksMetric      PredictionMetric = "clicks"
	ConversionsMetric PredictionMetric = "conversions"
	SpendMetric       PredictionMetric = "spend"
)

// All trend directions supported.
const (
	GrowingTrend   TrendDirection = "growing"
	StableTrend    TrendDirection = "stable"
	DecliningTrend TrendDirection = "declining"
)

// All recommendation priorities supported.
const (
	HighPriority   Priority = "high"
	MediumPriority Priority = "medium"
	LowPriority    Priority = "low"
)

// Factor keys used in the delivery risk breakdown.
const (
	FactorBudgetPacing FactorKey = "budget_pacing" // |pace variance|
	FactorDeliveryGap  FactorKey = "delivery_gap"  // actual vs forecast impressions
	FactorTimePressure FactorKey = "time_pressure" // days remaining tiers
	FactorEngagement   FactorKey = "engagement"    // CTR tiers
	FactorFlightStatus FactorKey = "flight_status" // paused/draft penalty
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllAttributionModels returns a list of all supported attribution models.
var AllAttributionModels = []AttributionModel{
	FirstTouchModel, LastTouchModel, LinearModel, TimeDecayModel, PositionBasedModel,
}

// AllPredictionMetrics returns a list of all supported prediction metrics.
var AllPredictionMetrics = []PredictionMetric{
	ImpressionsMetric, ClicksMetric, ConversionsMetric, SpendMetric,
}

// AllFactorKeys returns the fixed delivery risk factor order.
var AllFactorKeys = []FactorKey{
	FactorBudgetPacing, FactorDeliveryGap, FactorTimePressure, FactorEngagement, FactorFlightStatus,
}

// ValidAttributionModels lists all valid attribution models.
var ValidAttributionModels = map[AttributionModel]struct{}{
	FirstTouchModel:    {},
	LastTouchModel:     {},
	LinearModel:        {},
	TimeDecayModel:     {},
	PositionBasedModel: {},
}

// ValidChannelTypes lists all valid channel types.
var ValidChannelTypes = map[ChannelType]struct{}{
	SearchChannel:    {},
	SocialChannel:    {},
	DisplayChannel:   {},
	VideoChannel:     {},
	EmailChannel:     {},
	AffiliateChannel: {},
	OrganicChannel:   {},
	DirectChannel:    {},
}

// ValidSegmentCategories lists all valid segment categories.
var ValidSegmentCategories = map[SegmentCategory]struct{}{
	DemographicsCategory: {},
	BehavioralCategory:   {},
	InterestCategory:     {},
	B2BCategory:          {},
	ContextualCategory:   {},
	FirstPartyCategory:   {},
	PixelBasedCategory:   {},
}

// ValidFlightStatuses lists all valid flight statuses.
var ValidFlightStatuses = map[FlightStatus]struct{}{
	DraftStatus:     {},
	ScheduledStatus: {},
	ActiveStatus:    {},
	PausedStatus:    {},
	CompletedStatus: {},
	ArchivedStatus:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidPredictionMetrics lists all valid prediction metrics.
var ValidPredictionMetrics = map[PredictionMetric]struct{}{
	ImpressionsMetric: {},
	ClicksMetric:      {},
	ConversionsMetric: {},
	SpendMetric:       {},
}

// GetDefaultRiskWeights returns the default weight map for delivery risk factors.
// Weights sum to 1.0; factors missing their inputs simply drop their weight.
func GetDefaultRiskWeights() map[FactorKey]float64 {
	return map[FactorKey]float64{
		FactorBudgetPacing: 0.30,
		FactorDeliveryGap:  0.25,
		FactorTimePressure: 0.20,
		FactorEngagement:   0.15,
		FactorFlightStatus: 0.10,
	}
}

// SeverityRank orders alert severities for sorting, most urgent first.
func SeverityRank(s AlertSeverity) int {
	switch s {
	case CriticalSeverity:
		return 0
	case WarningSeverity:
		return 1
	default:
		return 2
	}
}

// PriorityRank orders recommendation priorities for sorting, highest first.
func PriorityRank(p Priority) int {
	switch p {
	case HighPriority:
		return 0
	case MediumPriority:
		return 1
	default:
		return 2
	}
}
