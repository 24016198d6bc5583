package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/adlens/adlens/core/algo"
	"github.com/adlens/adlens/internal/contract"
	"github.com/adlens/adlens/schema"
)

// AnalyzeBudgetPacing compares a flight's actual spend against the linear
// ideal for the elapsed share of its schedule. It returns nil when the
// flight is missing dates or delivery actuals, since pacing against an
// unknown schedule or unknown spend means nothing.
func AnalyzeBudgetPacing(f *schema.Flight, now time.Time, set *contract.EngineSettings) *schema.BudgetPacingAnalysis {
	if f.StartDate.IsZero() || f.EndDate.IsZero() || f.Delivery == nil {
		return nil
	}

	totalDays := daysCeil(f.EndDate.Sub(f.StartDate))
	if totalDays < 1 {
		totalDays = 1
	}
	daysElapsed := daysCeil(now.Sub(f.StartDate))
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	if daysElapsed > totalDays {
		daysElapsed = totalDays
	}

	idealSpend := f.Budget * float64(daysElapsed) / float64(totalDays)
	actualSpend := f.Delivery.ActualSpend

	paceVariance := 0.0
	if idealSpend > 0 {
		paceVariance = (actualSpend - idealSpend) / idealSpend * 100
	}

	status := schema.OnTrack
	switch {
	case paceVariance < set.UnderPacingPct:
		status = schema.UnderPacing
	case paceVariance > set.OverPacingPct:
		status = schema.OverPacing
	}

	dailyRate := 0.0
	if daysElapsed > 0 {
		dailyRate = actualSpend / float64(daysElapsed)
	}
	projectedSpend := dailyRate * float64(totalDays)
	if cap := f.Budget * set.SpendCapRatio; projectedSpend > cap {
		projectedSpend = cap
	}

	analysis := &schema.BudgetPacingAnalysis{
		FlightID:       f.ID,
		FlightName:     f.Name,
		Budget:         f.Budget,
		TotalDays:      totalDays,
		DaysElapsed:    daysElapsed,
		DaysRemaining:  totalDays - daysElapsed,
		IdealSpend:     idealSpend,
		ActualSpend:    actualSpend,
		PaceVariance:   paceVariance,
		ProjectedSpend: projectedSpend,
		Status:         status,
	}

	if math.Abs(paceVariance) > set.PacingAlertPct {
		severity := schema.WarningSeverity
		if math.Abs(paceVariance) > set.PacingCriticalPct {
			severity = schema.CriticalSeverity
		}
		direction := "over"
		recommendation := "Lower daily caps or tighten targeting to smooth delivery"
		if paceVariance < 0 {
			direction = "under"
			recommendation = "Raise bids or broaden audiences to catch up"
		}
		analysis.Alert = &schema.PredictiveAlert{
			ID:             alertID(now, string(schema.PacingAlert), f.ID),
			Type:           schema.PacingAlert,
			Severity:       severity,
			Message:        fmt.Sprintf("Flight %q is %s pacing by %.1f%%", f.Name, direction, math.Abs(paceVariance)),
			EntityID:       f.ID,
			EntityName:     f.Name,
			Metric:         string(schema.SpendMetric),
			Current:        actualSpend,
			Projected:      projectedSpend,
			Threshold:      set.PacingAlertPct,
			Impact:         fmt.Sprintf("Projected spend $%.2f against a $%.2f budget", projectedSpend, f.Budget),
			Recommendation: recommendation,
			Timestamp:      now,
		}
	}

	return analysis
}

// PredictPerformance projects one flight metric linearly to the end of the
// schedule. It returns nil when the flight lacks dates, lacks the data
// behind the metric, or has not been live for a full day yet.
func PredictPerformance(f *schema.Flight, metric schema.PredictionMetric, now time.Time, set *contract.EngineSettings) *schema.PerformancePrediction {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return nil
	}
	current, ok := currentMetricValue(f, metric)
	if !ok {
		return nil
	}

	totalDays := daysCeil(f.EndDate.Sub(f.StartDate))
	if totalDays < 1 {
		totalDays = 1
	}
	daysElapsed := daysCeil(now.Sub(f.StartDate))
	if daysElapsed > totalDays {
		daysElapsed = totalDays
	}
	if daysElapsed <= 0 {
		return nil
	}

	dailyRate := current / float64(daysElapsed)
	remaining := totalDays - daysElapsed
	projected := current + dailyRate*float64(remaining)

	goal := goalMetricValue(f, metric)

	trend := schema.StableTrend
	if goal > 0 {
		goalRate := goal / float64(totalDays)
		band := set.TrendBandPct / 100
		switch {
		case dailyRate > goalRate*(1+band):
			trend = schema.GrowingTrend
		case dailyRate < goalRate*(1-band):
			trend = schema.DecliningTrend
		}
	}

	prediction := &schema.PerformancePrediction{
		FlightID:       f.ID,
		FlightName:     f.Name,
		Metric:         metric,
		CurrentValue:   current,
		DailyRate:      dailyRate,
		ProjectedValue: projected,
		Goal:           goal,
		Trend:          trend,
		Confidence:     math.Min(1, float64(daysElapsed)/set.RampDays),
	}

	if goal > 0 && projected < goal*set.GoalAlertRatio {
		severity := schema.WarningSeverity
		if projected < goal*set.GoalCriticalRatio {
			severity = schema.CriticalSeverity
		}
		attainment := algo.SafeDiv(projected, goal) * 100
		prediction.Alert = &schema.PredictiveAlert{
			ID:             alertID(now, string(schema.PerformanceAlert), f.ID, string(metric)),
			Type:           schema.PerformanceAlert,
			Severity:       severity,
			Message:        fmt.Sprintf("Flight %q is projected to reach %.1f%% of its %s goal", f.Name, attainment, metric),
			EntityID:       f.ID,
			EntityName:     f.Name,
			Metric:         string(metric),
			Current:        current,
			Projected:      projected,
			Threshold:      goal,
			Impact:         fmt.Sprintf("Projected %.0f against a goal of %.0f", projected, goal),
			Recommendation: "Review bids, creatives and audience mix before the flight ends",
			Timestamp:      now,
		}
	}

	return prediction
}

// AssessDeliveryRisk scores a flight's delivery risk from five weighted
// factors. Factors whose inputs are missing are skipped without
// renormalizing, so a sparse flight can only accumulate risk from the
// signals it actually has.
func AssessDeliveryRisk(f *schema.Flight, now time.Time, set *contract.EngineSettings) *schema.DeliveryRiskAssessment {
	var factors []schema.RiskFactor

	addFactor := func(key schema.FactorKey, score float64) {
		factors = append(factors, schema.RiskFactor{
			Key:    key,
			Name:   schema.FactorName(key),
			Score:  algo.ClampRange(score, 0, 100),
			Weight: set.RiskWeights[key],
		})
	}

	if pacing := AnalyzeBudgetPacing(f, now, set); pacing != nil {
		addFactor(schema.FactorBudgetPacing, math.Abs(pacing.PaceVariance))
	}

	if f.Delivery != nil && f.Forecast != nil && f.Forecast.Impressions > 0 {
		ratio := float64(f.Delivery.ActualImpressions) / float64(f.Forecast.Impressions)
		addFactor(schema.FactorDeliveryGap, math.Abs(1-ratio)*100)
	}

	if !f.EndDate.IsZero() {
		daysRemaining := daysCeil(f.EndDate.Sub(now))
		if daysRemaining < 0 {
			daysRemaining = 0
		}
		addFactor(schema.FactorTimePressure, tieredScore(float64(daysRemaining), 3, 7, 14))
	}

	if f.Performance != nil {
		addFactor(schema.FactorEngagement, tieredScore(f.Performance.CTR, 0.5, 1.0, 2.0))
	}

	switch f.Status {
	case schema.PausedStatus:
		addFactor(schema.FactorFlightStatus, 100)
	case schema.DraftStatus:
		addFactor(schema.FactorFlightStatus, 80)
	default:
		addFactor(schema.FactorFlightStatus, 0)
	}

	score := 0.0
	for _, factor := range factors {
		score += factor.Weighted()
	}
	score = algo.ClampRange(score, 0, 100)

	level := schema.LowRisk
	switch {
	case score >= set.RiskCritical:
		level = schema.CriticalRisk
	case score >= set.RiskHigh:
		level = schema.HighRisk
	case score >= set.RiskMedium:
		level = schema.MediumRisk
	}

	assessment := &schema.DeliveryRiskAssessment{
		FlightID:   f.ID,
		FlightName: f.Name,
		RiskScore:  score,
		RiskLevel:  level,
		Factors:    factors,
	}

	if level == schema.HighRisk || level == schema.CriticalRisk {
		severity := schema.WarningSeverity
		if level == schema.CriticalRisk {
			severity = schema.CriticalSeverity
		}
		drivers := topFactorKeys(factors, 2)
		assessment.Alert = &schema.PredictiveAlert{
			ID:             alertID(now, string(schema.RiskAlert), f.ID),
			Type:           schema.RiskAlert,
			Severity:       severity,
			Message:        fmt.Sprintf("Flight %q delivery risk is %.0f, driven by %s", f.Name, score, schema.FormatFactorNames(drivers)),
			EntityID:       f.ID,
			EntityName:     f.Name,
			Current:        score,
			Threshold:      set.RiskHigh,
			Impact:         "Delivery shortfall likely without intervention",
			Recommendation: fmt.Sprintf("Start with %s", schema.FormatFactorNames(drivers[:1])),
			Timestamp:      now,
		}
	}

	return assessment
}

// IdentifyOpportunities scans a campaign for budget, audience and creative
// plays: reallocating budget toward an outlier flight, expanding audiences
// where engagement outstrips conversion capture, and refreshing creative on
// long-running flights with tired click-through rates.
func IdentifyOpportunities(c *schema.Campaign, now time.Time, set *contract.EngineSettings) []schema.OpportunityScore {
	var opps []schema.OpportunityScore

	addOpp := func(opp schema.OpportunityScore) {
		opp.CampaignID = c.ID
		opp.CampaignName = c.Name
		if opp.Score >= set.OpportunityAlertScore {
			entityID, entityName := opp.FlightID, opp.FlightName
			if entityID == "" {
				entityID, entityName = c.ID, c.Name
			}
			opp.Alert = &schema.PredictiveAlert{
				ID:         alertID(now, string(schema.OpportunityAlert), string(opp.Type), entityID),
				Type:       schema.OpportunityAlert,
				Severity:   schema.InfoSeverity,
				Message:    opp.Title,
				EntityID:   entityID,
				EntityName: entityName,
				Current:    opp.Score,
				Threshold:  set.OpportunityAlertScore,
				Impact:     opp.Impact,
				Timestamp:  now,
			}
		}
		opps = append(opps, opp)
	}

	// Budget reallocation: one flight clearly outperforming the pack
	var measured []*schema.Flight
	var roasSum float64
	for i := range c.Flights {
		f := &c.Flights[i]
		if f.Performance != nil {
			measured = append(measured, f)
			roasSum += f.Performance.ROAS
		}
	}
	if len(measured) >= 2 {
		avgROAS := roasSum / float64(len(measured))
		top := measured[0]
		for _, f := range measured[1:] {
			if f.Performance.ROAS > top.Performance.ROAS {
				top = f
			}
		}
		if avgROAS > 0 && top.Performance.ROAS > 1.5*avgROAS {
			ratio := top.Performance.ROAS / avgROAS
			addOpp(schema.OpportunityScore{
				FlightID:    top.ID,
				FlightName:  top.Name,
				Type:        schema.BudgetReallocation,
				Score:       math.Min(100, 40*ratio),
				Title:       fmt.Sprintf("Shift budget toward %q", top.Name),
				Description: fmt.Sprintf("ROAS %.2f is %.1fx the campaign average of %.2f", top.Performance.ROAS, ratio, avgROAS),
				Impact:      "Higher return on the same campaign budget",
			})
		}
	}

	for i := range c.Flights {
		f := &c.Flights[i]
		if f.Performance == nil {
			continue
		}
		perf := f.Performance

		// Audience expansion: strong engagement the funnel fails to capture,
		// or an efficiency outlier worth scaling
		switch {
		case perf.CTR > 2 && perf.CVR < 1 && perf.ROAS < 2:
			addOpp(schema.OpportunityScore{
				FlightID:    f.ID,
				FlightName:  f.Name,
				Type:        schema.AudienceExpansion,
				Score:       math.Min(100, 60+10*(perf.CTR-2)),
				Title:       fmt.Sprintf("Expand audiences on %q", f.Name),
				Description: fmt.Sprintf("CTR %.2f%% draws clicks but CVR %.2f%% and ROAS %.2f lag; fresh audiences may convert better", perf.CTR, perf.CVR, perf.ROAS),
				Impact:      "More conversions from engagement already paid for",
			})
		case perf.ROAS > 5 && perf.CTR > 3:
			addOpp(schema.OpportunityScore{
				FlightID:    f.ID,
				FlightName:  f.Name,
				Type:        schema.AudienceExpansion,
				Score:       math.Min(100, 70+4*(perf.ROAS-5)),
				Title:       fmt.Sprintf("Scale the audience behind %q", f.Name),
				Description: fmt.Sprintf("ROAS %.2f with CTR %.2f%% suggests headroom in similar audiences", perf.ROAS, perf.CTR),
				Impact:      "Capture more of a proven high-return audience",
			})
		}

		// Creative refresh: long-running flight with tired engagement
		if !f.StartDate.IsZero() {
			runningDays := contract.CalculateDaysBetween(f.StartDate, now)
			if runningDays > 30 && perf.CTR < 1.5 {
				addOpp(schema.OpportunityScore{
					FlightID:    f.ID,
					FlightName:  f.Name,
					Type:        schema.CreativeRefresh,
					Score:       math.Min(100, 50+30*(1.5-perf.CTR)),
					Title:       fmt.Sprintf("Refresh creative on %q", f.Name),
					Description: fmt.Sprintf("Running %d days with CTR down to %.2f%%", runningDays, perf.CTR),
					Impact:      "Recover engagement lost to creative fatigue",
				})
			}
		}
	}

	return opps
}

// GetAllAlerts runs every predictive analysis across the campaigns and
// returns the embedded alerts in presentation order: severity first, newest
// first within a severity, entity name as the final tiebreak.
func GetAllAlerts(campaigns []schema.Campaign, now time.Time, set *contract.EngineSettings) []schema.PredictiveAlert {
	var alerts []schema.PredictiveAlert

	for ci := range campaigns {
		c := &campaigns[ci]

		for _, opp := range IdentifyOpportunities(c, now, set) {
			if opp.Alert != nil {
				alerts = append(alerts, *opp.Alert)
			}
		}

		for fi := range c.Flights {
			f := &c.Flights[fi]

			if pacing := AnalyzeBudgetPacing(f, now, set); pacing != nil && pacing.Alert != nil {
				alerts = append(alerts, *pacing.Alert)
			}
			if risk := AssessDeliveryRisk(f, now, set); risk.Alert != nil {
				alerts = append(alerts, *risk.Alert)
			}
			for _, metric := range schema.AllPredictionMetrics {
				if goalMetricValue(f, metric) <= 0 {
					continue
				}
				if prediction := PredictPerformance(f, metric, now, set); prediction != nil && prediction.Alert != nil {
					alerts = append(alerts, *prediction.Alert)
				}
			}
		}
	}

	algo.SortAlerts(alerts)
	return alerts
}

// alertNamespace scopes derived alert IDs to this engine.
var alertNamespace = uuid.MustParse("5d1a8f62-74c3-4b0e-9a57-2e8c6f3b9d41")

// alertID derives a stable identifier from the alert's subject. The same
// anchor time and discriminators always mint the same ID, so repeated
// analyses over identical inputs return identical alerts.
func alertID(now time.Time, parts ...string) string {
	name := strconv.FormatInt(now.UnixNano(), 10)
	for _, part := range parts {
		name += "|" + part
	}
	return uuid.NewSHA1(alertNamespace, []byte(name)).String()
}

// daysCeil converts a duration to whole days, rounding any partial day up.
func daysCeil(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// tieredScore maps a value to the 100/60/30/10 risk ladder: below the first
// cutoff is maximum risk, past the last is background noise.
func tieredScore(value, first, second, third float64) float64 {
	switch {
	case value < first:
		return 100
	case value < second:
		return 60
	case value < third:
		return 30
	default:
		return 10
	}
}

// currentMetricValue pulls the observed value behind a prediction metric.
// Spend lives in delivery actuals; everything else in performance.
func currentMetricValue(f *schema.Flight, metric schema.PredictionMetric) (float64, bool) {
	if metric == schema.SpendMetric {
		if f.Delivery == nil {
			return 0, false
		}
		return f.Delivery.ActualSpend, true
	}
	if f.Performance == nil {
		return 0, false
	}
	switch metric {
	case schema.ImpressionsMetric:
		return float64(f.Performance.Impressions), true
	case schema.ClicksMetric:
		return float64(f.Performance.Clicks), true
	case schema.ConversionsMetric:
		return float64(f.Performance.Conversions), true
	default:
		return 0, false
	}
}

// goalMetricValue returns the flight's goal for a metric, 0 when unset.
func goalMetricValue(f *schema.Flight, metric schema.PredictionMetric) float64 {
	if f.Goals == nil {
		return 0
	}
	switch metric {
	case schema.ImpressionsMetric:
		return f.Goals.Impressions
	case schema.ClicksMetric:
		return f.Goals.Clicks
	case schema.ConversionsMetric:
		return f.Goals.Conversions
	case schema.SpendMetric:
		return f.Goals.Spend
	default:
		return 0
	}
}

// topFactorKeys returns the keys of the n largest factors by weighted
// contribution, preserving factor order on ties.
func topFactorKeys(factors []schema.RiskFactor, n int) []schema.FactorKey {
	ranked := make([]schema.RiskFactor, len(factors))
	copy(ranked, factors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weighted() > ranked[j].Weighted()
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	keys := make([]schema.FactorKey, 0, n)
	for _, f := range ranked[:n] {
		keys = append(keys, f.Key)
	}
	return keys
}
