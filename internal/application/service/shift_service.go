package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// ShiftService tracks cash-register sessions and writes the one
// immutable Z-report per shift at close
type ShiftService struct {
	txManager   repository.TxManager
	shiftRepo   repository.ShiftRepository
	zReportRepo repository.ZReportRepository
	paymentRepo repository.PaymentRepository
	pos         config.POSConfig
}

// NewShiftService creates a new shift service
func NewShiftService(
	txManager repository.TxManager,
	shiftRepo repository.ShiftRepository,
	zReportRepo repository.ZReportRepository,
	paymentRepo repository.PaymentRepository,
	pos config.POSConfig,
) *ShiftService {
	return &ShiftService{
		txManager:   txManager,
		shiftRepo:   shiftRepo,
		zReportRepo: zReportRepo,
		paymentRepo: paymentRepo,
		pos:         pos,
	}
}

// Open starts a new shift for the cashier. A cashier can hold at most
// one ACTIVE shift; the row lock plus the partial unique index close
// the race between two concurrent opens.
func (s *ShiftService) Open(ctx context.Context, cashierID uuid.UUID, openingCash int64) (*entity.Shift, error) {
	if openingCash < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "opening_cash", Message: "must not be negative"},
		})
	}

	var shift *entity.Shift
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.shiftRepo.GetActiveByCashier(ctx, cashierID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewInvalidStateError("Cashier already has an active shift")
		}

		shift = &entity.Shift{
			CashierID:   cashierID,
			OpeningCash: openingCash,
			Status:      enum.ShiftStatusActive,
			OpenedAt:    time.Now(),
		}
		return s.shiftRepo.Create(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// Close reconciles and closes the shift. Payment details referencing
// the shift are aggregated per method; payments recorded without a
// shift link fall back to time-window matching on the same cashier.
// expectedCash = openingCash + cash payments; variance = actual −
// expected. Exactly one Z-report is ever written per shift.
func (s *ShiftService) Close(ctx context.Context, shiftID, cashierID uuid.UUID, actualCash int64) (*entity.ZReport, error) {
	var report *entity.ZReport

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		shift, err := s.shiftRepo.GetByID(ctx, shiftID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperror.NewNotFoundError("Shift")
		}
		if shift.CashierID != cashierID {
			return apperror.NewUnauthorizedError("Shift belongs to another cashier")
		}
		if shift.Status == enum.ShiftStatusClosed {
			return apperror.NewInvalidStateError("Shift is already closed")
		}

		existing, err := s.zReportRepo.GetByShiftID(ctx, shiftID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewInvalidStateError("Shift already has a Z-report")
		}

		now := time.Now()

		payments, err := s.paymentRepo.ListByShift(ctx, shiftID)
		if err != nil {
			return err
		}
		detached, err := s.paymentRepo.ListDetachedInWindow(ctx, cashierID,
			shift.OpenedAt.Add(-s.pos.ShiftMatchWindow), now)
		if err != nil {
			return err
		}
		payments = append(payments, detached...)

		totals := make(map[enum.PaymentMethod]int64)
		counts := make(map[enum.PaymentMethod]int)
		for _, payment := range payments {
			applied := payment.Amount
			if payment.Detail != nil {
				applied = payment.Detail.AppliedAmount
			}
			totals[payment.Method] += applied
			counts[payment.Method]++
		}

		expected := shift.OpeningCash + totals[enum.PaymentMethodCash]

		lines := make([]entity.ZReportLine, 0, len(totals))
		for method, total := range totals {
			lines = append(lines, entity.ZReportLine{
				Method: method,
				Total:  total,
				Count:  counts[method],
			})
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].Method < lines[j].Method })

		report = &entity.ZReport{
			ShiftID:      shiftID,
			ClosedAt:     now,
			ExpectedCash: expected,
			ActualCash:   actualCash,
			Variance:     actualCash - expected,
			Lines:        lines,
		}
		if err := s.zReportRepo.Create(ctx, report); err != nil {
			return err
		}

		shift.Status = enum.ShiftStatusClosed
		shift.ClosedAt = &now
		shift.ActualCash = &actualCash
		return s.shiftRepo.Update(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetZReport returns the shift's Z-report
func (s *ShiftService) GetZReport(ctx context.Context, shiftID uuid.UUID) (*entity.ZReport, error) {
	report, err := s.zReportRepo.GetByShiftID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NewNotFoundError("Z-report")
	}
	return report, nil
}

// GetActive returns the cashier's ACTIVE shift, if any
func (s *ShiftService) GetActive(ctx context.Context, cashierID uuid.UUID) (*entity.Shift, error) {
	return s.shiftRepo.GetActiveByCashier(ctx, cashierID)
}

// List returns shifts, optionally filtered to one cashier
func (s *ShiftService) List(ctx context.Context, cashierID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Shift, *pagination.Pagination, error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	shifts, total, err := s.shiftRepo.List(ctx, cashierID, params)
	if err != nil {
		return nil, nil, err
	}
	return shifts, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// ExportZReportCSV writes the Z-report in its fixed CSV layout:
// header rows, a blank line, then the per-method table
func (s *ShiftService) ExportZReportCSV(ctx context.Context, shiftID uuid.UUID) ([]byte, error) {
	report, err := s.GetZReport(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Shift ID", report.ShiftID.String()},
		{"Closed At", report.ClosedAt.Format("2006-01-02 15:04:05")},
		{"Expected Cash", strconv.FormatInt(report.ExpectedCash, 10)},
		{"Actual Cash", strconv.FormatInt(report.ActualCash, 10)},
		{"Variance", strconv.FormatInt(report.Variance, 10)},
		{""},
		{"Payment Method", "Total", "Count"},
	}
	for _, line := range report.Lines {
		rows = append(rows, []string{
			line.Method.String(),
			strconv.FormatInt(line.Total, 10),
			strconv.Itoa(line.Count),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
