package services

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/pkg/helpers"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

const (
	defaultFrequency = "monthly"
	clockLayout      = "15:04"
	amountScale      = 2
)

var frequencies = map[string]bool{
	"daily":   true,
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
}

var transactionKinds = map[string]bool{
	models.KindOneTime:   true,
	models.KindRecurring: true,
	models.KindTimeline:  true,
}

type transactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	Get(ctx context.Context, uid, id string) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, uid, id string) error
	List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error)
}

type transactionService struct {
	store transactionStore
	loc   *time.Location
	now   func() time.Time
}

func NewTransactionService(store transactionStore, loc *time.Location) *transactionService {
	if loc == nil {
		loc = time.UTC
	}
	return &transactionService{store: store, loc: loc, now: time.Now}
}

func (s *transactionService) List(ctx context.Context, uid string, q dto.TransactionQuery) (dto.TransactionListResult, error) {
	if q.Type != nil && !models.ValidType(*q.Type) {
		q.Type = nil
	}
	txs, err := s.store.List(ctx, uid, q)
	if err != nil {
		return dto.TransactionListResult{}, err
	}
	return dto.TransactionListResult{Transactions: txs, Count: len(txs)}, nil
}

func (s *transactionService) Create(ctx context.Context, uid string, req dto.TransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	if !models.ValidType(req.Type) {
		if req.Type == "" {
			return nil, errs.NewValidationError("title, amount, and type are required")
		}
		return nil, errs.NewValidationError("type must be either expense or income")
	}

	tx := &models.Transaction{ID: uuid.NewString(), UserID: uid, Type: req.Type}
	if err := s.apply(tx, req); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, tx); err != nil {
		log.Error("failed to create transaction", "error", err)
		return nil, err
	}

	log.Info("transaction created", "transaction_id", tx.ID, "type", tx.Type)
	return tx, nil
}

// Update replaces every editable field. The type is kept when omitted.
func (s *transactionService) Update(ctx context.Context, uid, id string, req dto.TransactionRequest) (*models.Transaction, error) {
	log := logger.FromContext(ctx)

	tx, err := s.store.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if req.Type != "" {
		if !models.ValidType(req.Type) {
			return nil, errs.NewValidationError("type must be either expense or income")
		}
		tx.Type = req.Type
	}
	if err := s.apply(tx, req); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, tx); err != nil {
		log.Warn("failed to update transaction", "transaction_id", id, "error", err)
		return nil, err
	}

	log.Info("transaction updated", "transaction_id", id)
	return tx, nil
}

func (s *transactionService) Delete(ctx context.Context, uid, id string) error {
	if err := s.store.Delete(ctx, uid, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", id)
	return nil
}

// apply validates req and copies it onto tx, filling defaults.
// maxAmount is the first value that does not fit the NUMERIC(14,2) column.
var maxAmount = decimal.New(1, 12)

func (s *transactionService) apply(tx *models.Transaction, req dto.TransactionRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.Amount.IsZero() {
		return errs.NewValidationError("title and amount are required")
	}
	if !req.Amount.IsPositive() {
		return errs.NewValidationError("amount must be greater than 0")
	}
	if !req.Amount.Equal(req.Amount.Round(amountScale)) {
		return errs.NewValidationError("amount must have at most 2 decimal places")
	}
	if req.Amount.GreaterThanOrEqual(maxAmount) {
		return errs.NewValidationError("amount must be less than 1000000000000")
	}

	tx.Title = title
	tx.Amount = req.Amount
	tx.Description = nonEmpty(req.Description)
	tx.Subcategory = nonEmpty(req.Subcategory)

	tx.Category = strings.TrimSpace(req.Category)
	if tx.Category == "" {
		tx.Category = defaultCategory(tx.Type)
	}

	tx.Date = civil.DateOf(s.now().In(s.loc))
	if req.Date != "" {
		d, err := parseDate("date", req.Date)
		if err != nil {
			return err
		}
		tx.Date = d
	}

	tx.Time = nil
	if req.Time != "" {
		if _, err := time.Parse(clockLayout, req.Time); err != nil {
			return errs.NewValidationError("time must be in HH:MM format")
		}
		tx.Time = helpers.Ptr(req.Time)
	}

	tx.TransactionType = models.KindOneTime
	if req.TransactionType != "" {
		if !transactionKinds[req.TransactionType] {
			return errs.NewValidationError("transactionType must be one-time, recurring or timeline")
		}
		tx.TransactionType = req.TransactionType
	}

	freq := defaultFrequency
	if req.Frequency != "" {
		if !frequencies[req.Frequency] {
			return errs.NewValidationError("frequency must be daily, weekly, monthly or yearly")
		}
		freq = req.Frequency
	}
	tx.Frequency = helpers.Ptr(freq)

	var err error
	if tx.StartDate, err = parseOptionalDate("startDate", req.StartDate); err != nil {
		return err
	}
	if tx.EndDate, err = parseOptionalDate("endDate", req.EndDate); err != nil {
		return err
	}
	if tx.StartDate != nil && tx.EndDate != nil && tx.EndDate.Before(*tx.StartDate) {
		return errs.NewValidationError("endDate must not be before startDate")
	}
	return nil
}

func parseDate(field, value string) (civil.Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return civil.Date{}, errs.NewValidationError(field + " must be a YYYY-MM-DD date")
	}
	return d, nil
}

func parseOptionalDate(field, value string) (*civil.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
