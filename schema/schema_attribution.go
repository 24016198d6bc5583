package schema

// AttributionResult is the aggregated outcome for one channel under one
// model. Credit is the channel's share of total credit across all paths
// (summing to 1 over the result set); Conversions and Revenue are
// credit-weighted; Cost is the plain sum of touchpoint costs, since spend
// is a sunk fact that credit does not reallocate.
type AttributionResult struct {
	Channel     string      `json:"channel"`
	ChannelType ChannelType `json:"channelType"`
	Credit      float64     `json:"credit"`
	Conversions float64     `json:"conversions"`
	Revenue     float64     `json:"revenue"`
	Cost        float64     `json:"cost"`
	ROAS        float64     `json:"roas"`
}

// ModelComparison holds one attribution run per model over the same paths.
// The model domain is closed, so results live in fixed fields instead of a
// map keyed by the enum.
type ModelComparison struct {
	FirstTouch    []AttributionResult `json:"firstTouch"`
	LastTouch     []AttributionResult `json:"lastTouch"`
	Linear        []AttributionResult `json:"linear"`
	TimeDecay     []AttributionResult `json:"timeDecay"`
	PositionBased []AttributionResult `json:"positionBased"`
}

// ByModel returns the result set for a model, nil for unknown values.
func (c *ModelComparison) ByModel(m AttributionModel) []AttributionResult {
	switch m {
	case FirstTouchModel:
		return c.FirstTouch
	case LastTouchModel:
		return c.LastTouch
	case LinearModel:
		return c.Linear
	case TimeDecayModel:
		return c.TimeDecay
	case PositionBasedModel:
		return c.PositionBased
	default:
		return nil
	}
}

// SetModel stores a result set under its model slot.
func (c *ModelComparison) SetModel(m AttributionModel, results []AttributionResult) {
	switch m {
	case FirstTouchModel:
		c.FirstTouch = results
	case LastTouchModel:
		c.LastTouch = results
	case LinearModel:
		c.Linear = results
	case TimeDecayModel:
		c.TimeDecay = results
	case PositionBasedModel:
		c.PositionBased = results
	}
}

// IncrementalityResult is the computed verdict of an incrementality test.
// Lift is a ratio (0.5 means +50%); Confidence is 1 - pValue clamped to
// [0,1].
type IncrementalityResult struct {
	TestID         string            `json:"testId"`
	Channel        string            `json:"channel"`
	ChannelType    ChannelType       `json:"channelType"`
	Lift           float64           `json:"lift"`
	Confidence     float64           `json:"confidence"`
	PValue         float64           `json:"pValue"`
	IsSignificant  bool              `json:"isSignificant"`
	Recommendation RecommendedAction `json:"recommendation"`
}
