package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/adlens/adlens/schema"
)

// writeJSONMetrics writes the workspace summary and methodology in JSON format.
func writeJSONMetrics(w io.Writer, metrics *schema.WorkspaceMetrics, renderModel *schema.MetricsRenderModel) error {
	output := struct {
		Workspace   *schema.WorkspaceMetrics   `json:"workspace"`
		Methodology *schema.MetricsRenderModel `json:"methodology"`
	}{
		Workspace:   metrics,
		Methodology: renderModel,
	}
	return writeJSON(w, output)
}

// writeCSVMetrics writes the workspace summary and methodology as
// section-tagged rows.
func writeCSVMetrics(w io.Writer, metrics *schema.WorkspaceMetrics, renderModel *schema.MetricsRenderModel) error {
	header := []string{"section", "name", "value", "description"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		workspaceRows := [][]string{
			{"workspace", "name", metrics.Name, ""},
			{"workspace", "campaigns", strconv.Itoa(metrics.Campaigns), ""},
			{"workspace", "flights", strconv.Itoa(metrics.Flights), ""},
			{"workspace", "active_flights", strconv.Itoa(metrics.ActiveFlights), ""},
			{"workspace", "flights_with_data", strconv.Itoa(metrics.FlightsWithData), ""},
			{"workspace", "placements", strconv.Itoa(metrics.Placements), ""},
			{"workspace", "paths", strconv.Itoa(metrics.Paths), ""},
			{"workspace", "touchpoints", strconv.Itoa(metrics.Touchpoints), ""},
			{"workspace", "experiments", strconv.Itoa(metrics.Experiments), ""},
			{"workspace", "segments", strconv.Itoa(metrics.Segments), ""},
			{"workspace", "channels", strings.Join(metrics.Channels, "|"), ""},
			{"workspace", "total_budget", fmt.Sprintf("%.2f", metrics.TotalBudget), ""},
			{"workspace", "total_spend", fmt.Sprintf("%.2f", metrics.TotalSpend), ""},
			{"workspace", "total_revenue", fmt.Sprintf("%.2f", metrics.TotalRevenue), ""},
		}
		for _, row := range workspaceRows {
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		for _, factor := range renderModel.Factors {
			row := []string{"factor", factor.Key, fmt.Sprintf("%.2f", factor.Weight), factor.Description}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		for _, model := range renderModel.Models {
			row := []string{"model", model.Name, strconv.FormatBool(model.Default), model.Rule}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
