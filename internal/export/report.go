// Package export renders a finished review as an XLSX workbook: one summary
// sheet, one sheet listing the supplementary findings, and one sheet with the
// per-document dates.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hyunsoo-an/purchase-review/internal/entity"
)

const (
	summarySheet  = "검토요약"
	findingsSheet = "보완서류"
	datesSheet    = "서류일자"
)

// Service produces XLSX bytes for review results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ReportXLSX returns the review report workbook as bytes.
func (s *Service) ReportXLSX(r *entity.ReviewResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{findingsSheet, datesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(summarySheet)
	f.SetActiveSheet(activeIndex)

	if err := writeSummary(f, r); err != nil {
		return nil, err
	}
	if err := writeFindings(f, r); err != nil {
		return nil, err
	}
	if err := writeDates(f, r); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"case_id", r.CaseID.String(),
		"findings", len(r.Supplementary),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if err := setCell(f, sheet, i+1, row, v); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, r *entity.ReviewResult) error {
	complete := "보완 필요"
	if r.IsReviewComplete() {
		complete = "적합"
	}

	rows := [][]any{
		{"항목", "값"},
		{"사건번호", r.CaseID.String()},
		{"신청인 구분", string(r.ApplicantKind)},
		{"신청인", r.ApplicantName},
		{"제출 서류 수", r.TotalDocuments},
		{"정상 서류 수", r.ValidDocuments},
		{"보완 서류 수", len(r.Supplementary)},
		{"미분류 파일 수", len(r.UnclassifiedFiles)},
		{"검토 결과", complete},
	}
	for _, name := range r.UnclassifiedFiles {
		rows = append(rows, []any{"미분류 파일", name})
	}

	for i, row := range rows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 18); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 42)
}

func writeFindings(f *excelize.File, r *entity.ReviewResult) error {
	if err := writeRow(f, findingsSheet, 1, []any{"번호", "규칙", "서류명", "사유", "구분"}); err != nil {
		return err
	}
	for i, finding := range r.Supplementary {
		kind := "보완"
		if finding.ManualCheck {
			kind = "수동확인"
		}
		err := writeRow(f, findingsSheet, i+2, []any{
			i + 1,
			finding.RuleID,
			finding.DocumentName,
			finding.Reason,
			kind,
		})
		if err != nil {
			return err
		}
	}
	if err := f.SetColWidth(findingsSheet, "C", "C", 34); err != nil {
		return err
	}
	return f.SetColWidth(findingsSheet, "D", "D", 72)
}

func writeDates(f *excelize.File, r *entity.ReviewResult) error {
	if err := writeRow(f, datesSheet, 1, []any{"서류명", "일자구분", "일자", "유효"}); err != nil {
		return err
	}
	for i, d := range r.DocumentDates {
		valid := "정상"
		if !d.Valid {
			valid = "확인필요"
		}
		err := writeRow(f, datesSheet, i+2, []any{d.DocumentName, d.DateKind, d.Date, valid})
		if err != nil {
			return err
		}
	}
	return f.SetColWidth(datesSheet, "A", "A", 28)
}
