package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"condo_ledger/internal/logger"
	"condo_ledger/internal/metrics"
	"condo_ledger/internal/models"
	"condo_ledger/internal/repository"
	"condo_ledger/internal/storage"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	PaymentsSheet = "Pagos"
	ExpensesSheet = "Gastos"
)

// Report is a generated workbook ready to be served.
type Report struct {
	Filename string
	Content  []byte
}

type ReportService struct {
	payments repository.PaymentRepository
	expenses repository.ExpenseRepository
	events   *eventRecorder
	archiver storage.Archiver
	log      *logger.Logger
	now      func() time.Time
}

func NewReportService(
	payments repository.PaymentRepository,
	expenses repository.ExpenseRepository,
	events *eventRecorder,
	archiver storage.Archiver,
	log *logger.Logger,
	now func() time.Time,
) *ReportService {
	if log == nil {
		log = logger.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		payments: payments,
		expenses: expenses,
		events:   events,
		archiver: archiver,
		log:      log,
		now:      now,
	}
}

// ReportFilename names the export after the day it was generated.
func ReportFilename(day time.Time) string {
	return fmt.Sprintf("Reporte_Condominio_%s.xlsx", day.Format(models.DateLayout))
}

// Generate snapshots both ledgers in insertion order into a two-sheet workbook.
func (s *ReportService) Generate(ctx context.Context, by models.Identity) (Report, error) {
	rep, err := s.build(ctx)
	if err != nil {
		metrics.ObserveReport(false)
		return Report{}, &ReportError{Err: err}
	}
	metrics.ObserveReport(true)

	meta := map[string]any{"filename": rep.Filename, "bytes": len(rep.Content)}
	if s.archiver != nil {
		loc, err := s.archiver.Archive(ctx, rep.Filename, rep.Content, XLSXContentType)
		if err != nil {
			s.log.Warnw("report_archive_failed", "filename", rep.Filename, "error", err)
		} else {
			meta["archive"] = loc
		}
	}

	s.events.record(ctx, models.EventReportExported, by.Username, "ledger exported to spreadsheet", meta)
	return rep, nil
}

func (s *ReportService) build(ctx context.Context) (Report, error) {
	payments, err := s.payments.List(ctx, repository.OldestFirst)
	if err != nil {
		return Report{}, fmt.Errorf("list payments: %w", err)
	}
	expenses, err := s.expenses.List(ctx, repository.OldestFirst)
	if err != nil {
		return Report{}, fmt.Errorf("list expenses: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the payments sheet so it stays first
	if err := f.SetSheetName(f.GetSheetName(0), PaymentsSheet); err != nil {
		return Report{}, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ExpensesSheet); err != nil {
		return Report{}, fmt.Errorf("add sheet %s: %w", ExpensesSheet, err)
	}

	paymentRows := make([][]any, 0, len(payments))
	for _, p := range payments {
		paymentRows = append(paymentRows, p.Row())
	}
	if err := writeSheet(f, PaymentsSheet, models.PaymentColumns, paymentRows); err != nil {
		return Report{}, err
	}

	expenseRows := make([][]any, 0, len(expenses))
	for _, e := range expenses {
		expenseRows = append(expenseRows, e.Row())
	}
	if err := writeSheet(f, ExpensesSheet, models.ExpenseColumns, expenseRows); err != nil {
		return Report{}, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Report{}, fmt.Errorf("write workbook: %w", err)
	}

	return Report{
		Filename: ReportFilename(s.now()),
		Content:  buf.Bytes(),
	}, nil
}

// writeSheet writes a header row followed by one row per record.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
