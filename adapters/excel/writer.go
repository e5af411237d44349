package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gopower/domain/power"
	"gopower/internal/errors"
)

// CurveWriter exports a sweep's power curve as an xlsx workbook for hand-off
// to lab members who read results in spreadsheets.
type CurveWriter struct{}

// NewCurveWriter creates a power-curve workbook writer
func NewCurveWriter() *CurveWriter {
	return &CurveWriter{}
}

const sheetName = "PowerCurve"

// WriteSweep writes one workbook with a header row and one row per estimate,
// in estimate order
func (w *CurveWriter) WriteSweep(result *power.SweepResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.ExportError("xlsx", err)
	}

	headers := []interface{}{"Scenario", "Sample Size", "Trials", "Rejections", "Power", "Analytic Power", "Mean Statistic", "Mean P-Value"}
	if err := w.writeRow(f, 1, headers); err != nil {
		return err
	}

	for i, e := range result.Estimates {
		row := []interface{}{
			e.ScenarioKey.String(),
			e.Param,
			e.NumTrials,
			e.Rejections,
			e.Power,
			nil,
			e.Diagnostics.MeanStatistic,
			e.Diagnostics.MeanPValue,
		}
		if e.AnalyticPower != nil {
			row[5] = *e.AnalyticPower
		}
		if err := w.writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	// A metadata sheet so a workbook is traceable back to its run.
	metaSheet := "Run"
	if _, err := f.NewSheet(metaSheet); err != nil {
		return errors.ExportError("xlsx", err)
	}
	meta := [][]interface{}{
		{"Sweep ID", result.SweepID.String()},
		{"Sampler", result.SamplerName},
		{"Decision Rule", result.RuleName},
		{"Trials per Scenario", result.NumTrials},
		{"Seed", result.Seed},
		{"Created At", result.CreatedAt.String()},
	}
	for i, pair := range meta {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.ExportError("xlsx", err)
		}
		if err := f.SetSheetRow(metaSheet, cell, &pair); err != nil {
			return errors.ExportError("xlsx", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportError("xlsx", fmt.Errorf("save %s: %w", path, err))
	}
	return nil
}

func (w *CurveWriter) writeRow(f *excelize.File, rowIndex int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return errors.ExportError("xlsx", err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return errors.ExportError("xlsx", err)
	}
	return nil
}
