package schema

// ComparisonDetail holds one channel's position under a base model, a
// target model, and the deltas between them.
type ComparisonDetail struct {
	Channel       string      `json:"channel"`
	ChannelType   ChannelType `json:"channel_type"`
	BaseCredit    float64     `json:"base_credit"`    // Credit share under the base model
	TargetCredit  float64     `json:"target_credit"`  // Credit share under the target model
	Delta         float64     `json:"delta"`          // TargetCredit - BaseCredit (positive means the target model favors this channel)
	BaseRevenue   float64     `json:"base_revenue"`   // Attributed revenue under the base model
	TargetRevenue float64     `json:"target_revenue"` // Attributed revenue under the target model
	DeltaRevenue  float64     `json:"delta_revenue"`  // Revenue swing between models
}

// ComparisonSummary has high-level shifts between the two models.
type ComparisonSummary struct {
	// 1. Total absolute credit moved between channels
	TotalCreditShift float64 `json:"total_credit_shift"`

	// 2. Total absolute revenue moved between channels
	TotalRevenueShift float64 `json:"total_revenue_shift"`

	// 3. Channels that gain or lose the most under the target model
	MaxGainChannel string `json:"max_gain_channel"`
	MaxLossChannel string `json:"max_loss_channel"`

	// 4. Channel counts
	TotalChannels   int `json:"total_channels"`
	ChannelsGaining int `json:"channels_gaining"`
	ChannelsLosing  int `json:"channels_losing"`
}

// ModelDeltaResult holds the channel-level comparison of two attribution
// models over the same paths, plus its summary.
type ModelDeltaResult struct {
	BaseModel   AttributionModel   `json:"base_model"`
	TargetModel AttributionModel   `json:"target_model"`
	Details     []ComparisonDetail `json:"details"`
	Summary     ComparisonSummary  `json:"summary"`
}
