package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"condo_ledger/internal/models"
	"condo_ledger/internal/storage"
)

type fakeArchiver struct {
	name        string
	body        []byte
	contentType string
	err         error
}

func (a *fakeArchiver) Archive(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	a.name, a.body, a.contentType = name, body, contentType
	if a.err != nil {
		return "", a.err
	}
	return "s3://bucket/" + name, nil
}

var reportDay = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newReportFixture(archiver *fakeArchiver) (*ReportService, *fakePaymentRepo, *fakeExpenseRepo, *fakeEventRepo) {
	payments := &fakePaymentRepo{}
	expenses := &fakeExpenseRepo{}
	events := &fakeEventRepo{}
	now := func() time.Time { return reportDay }
	var arch storage.Archiver
	if archiver != nil {
		arch = archiver
	}
	svc := NewReportService(payments, expenses, newEventRecorder(NewEventLogService(events, now), nil), arch, nil, now)
	return svc, payments, expenses, events
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "Reporte_Condominio_2024-05-01.xlsx", ReportFilename(reportDay))
}

func TestReportService_Generate(t *testing.T) {
	svc, payments, expenses, events := newReportFixture(nil)
	payments.rows = []models.Payment{
		{ID: 1, Apartment: "A-1", PaymentDate: models.NewDate(2024, 4, 2), MonthCovered: "Abril", AmountUSD: 50, PaymentMethod: "efectivo", RecordedBy: "admin"},
		{ID: 2, Apartment: "B-7", PaymentDate: models.NewDate(2024, 4, 3), MonthCovered: "Abril", AmountBS: 1800.5, PaymentMethod: "pago movil", Reference: strPtr("998877"), RecordedBy: "tesorero"},
	}
	expenses.rows = []models.Expense{
		{ID: 1, ExpenseDate: models.NewDate(2024, 4, 10), Description: "Jardineria", Amount: 40, RecordedBy: "tesorero"},
	}

	rep, err := svc.Generate(context.Background(), treasurer)
	require.NoError(t, err)
	assert.Equal(t, "Reporte_Condominio_2024-05-01.xlsx", rep.Filename)
	require.NotEmpty(t, rep.Content)

	f := openWorkbook(t, rep.Content)
	assert.Equal(t, []string{PaymentsSheet, ExpensesSheet}, f.GetSheetList())

	rows, err := f.GetRows(PaymentsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per payment")
	assert.Equal(t, models.PaymentColumns, rows[0])
	assert.Equal(t, "A-1", rows[1][1])
	assert.Equal(t, "B-7", rows[2][1])

	ref, err := f.GetCellValue(PaymentsSheet, "H3")
	require.NoError(t, err)
	assert.Equal(t, "998877", ref)

	rows, err = f.GetRows(ExpensesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.ExpenseColumns, rows[0])
	assert.Equal(t, "Jardineria", rows[1][2])

	assert.Equal(t, []string{models.EventReportExported}, events.types())
}

func TestReportService_Generate_EmptyLedger(t *testing.T) {
	svc, _, _, _ := newReportFixture(nil)

	rep, err := svc.Generate(context.Background(), treasurer)
	require.NoError(t, err)

	f := openWorkbook(t, rep.Content)
	for sheet, header := range map[string][]string{
		PaymentsSheet: models.PaymentColumns,
		ExpensesSheet: models.ExpenseColumns,
	} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "only the header row in %s", sheet)
		assert.Equal(t, header, rows[0])
	}
}

func TestReportService_Generate_StoreFailure(t *testing.T) {
	svc, _, expenses, events := newReportFixture(nil)
	expenses.err = errors.New("database is locked")

	_, err := svc.Generate(context.Background(), treasurer)

	var re *ReportError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Empty(t, events.types())
}

func TestReportService_Generate_Archives(t *testing.T) {
	arch := &fakeArchiver{}
	svc, _, _, events := newReportFixture(arch)

	rep, err := svc.Generate(context.Background(), treasurer)
	require.NoError(t, err)

	assert.Equal(t, rep.Filename, arch.name)
	assert.Equal(t, rep.Content, arch.body)
	assert.Equal(t, XLSXContentType, arch.contentType)

	require.Len(t, events.appended, 1)
	meta, ok := events.appended[0].Metadata.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "s3://bucket/"+rep.Filename, meta["archive"])
}

func TestReportService_Generate_ArchiveFailureIsNotFatal(t *testing.T) {
	svc, _, _, _ := newReportFixture(&fakeArchiver{err: errors.New("no credentials")})

	rep, err := svc.Generate(context.Background(), treasurer)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Content)
}
