package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
)

const transactionColumns = `id, user_id, type, title, description, amount, category, subcategory,
	entry_date, entry_time, transaction_type, frequency, start_date, end_date, created_at, updated_at`

type transactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *transactionStore {
	return &transactionStore{pool: pool}
}

func (s *transactionStore) Create(ctx context.Context, tx *models.Transaction) error {
	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO cost_entries (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		tx.ID, tx.UserID, tx.Type, tx.Title, tx.Description, tx.Amount, tx.Category, tx.Subcategory,
		dateParam(tx.Date), tx.Time, tx.TransactionType, tx.Frequency,
		optDateParam(tx.StartDate), optDateParam(tx.EndDate), tx.CreatedAt, tx.UpdatedAt,
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, id string) (*models.Transaction, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM cost_entries WHERE id = $1 AND user_id = $2`,
		id, uid,
	)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	return tx, nil
}

func (s *transactionStore) Update(ctx context.Context, tx *models.Transaction) error {
	tx.UpdatedAt = time.Now()

	tag, err := s.pool.Exec(ctx, `
		UPDATE cost_entries
		SET type = $3, title = $4, description = $5, amount = $6, category = $7, subcategory = $8,
		    entry_date = $9, entry_time = $10, transaction_type = $11, frequency = $12,
		    start_date = $13, end_date = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2`,
		tx.ID, tx.UserID, tx.Type, tx.Title, tx.Description, tx.Amount, tx.Category, tx.Subcategory,
		dateParam(tx.Date), tx.Time, tx.TransactionType, tx.Frequency,
		optDateParam(tx.StartDate), optDateParam(tx.EndDate), tx.UpdatedAt,
	)
	if err != nil {
		if isMalformedID(err) {
			return errs.NewNotFoundError("transaction not found")
		}
		return errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("transaction not found")
	}
	return nil
}

func (s *transactionStore) Delete(ctx context.Context, uid, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cost_entries WHERE id = $1 AND user_id = $2`, id, uid)
	if err != nil {
		if isMalformedID(err) {
			return errs.NewNotFoundError("transaction not found")
		}
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError("transaction not found")
	}
	return nil
}

func (s *transactionStore) List(ctx context.Context, uid string, q dto.TransactionQuery) ([]models.Transaction, error) {
	args := []any{uid}
	var where strings.Builder
	if q.Type != nil {
		args = append(args, *q.Type)
		fmt.Fprintf(&where, " AND type = $%d", len(args))
	}
	filter, args := dateFilter(q.Range, args)
	where.WriteString(filter)

	rows, err := s.pool.Query(ctx,
		`SELECT `+transactionColumns+` FROM cost_entries
		 WHERE user_id = $1`+where.String()+`
		 ORDER BY entry_date DESC, created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction", err)
		}
		out = append(out, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list transactions", err)
	}
	return out, nil
}

// DailyTotals sums amounts per day and type for one user, oldest day first.
func (s *transactionStore) DailyTotals(ctx context.Context, uid string, r dto.DateRange) ([]models.DailyTotal, error) {
	filter, args := dateFilter(r, []any{uid})

	rows, err := s.pool.Query(ctx, `
		SELECT entry_date,
		       SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END)  AS income,
		       SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expenses
		FROM cost_entries
		WHERE user_id = $1`+filter+`
		GROUP BY entry_date
		ORDER BY entry_date ASC`,
		args...,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to aggregate daily totals", err)
	}
	defer rows.Close()

	out := make([]models.DailyTotal, 0)
	for rows.Next() {
		var (
			day              time.Time
			income, expenses decimal.NullDecimal
		)
		if err := rows.Scan(&day, &income, &expenses); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse daily totals", err)
		}
		out = append(out, models.DailyTotal{
			Date:     civil.DateOf(day),
			Income:   income,
			Expenses: expenses,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to aggregate daily totals", err)
	}
	return out, nil
}

// Totals sums income and expense for one user over the range.
func (s *transactionStore) Totals(ctx context.Context, uid string, r dto.DateRange) (models.PeriodTotals, error) {
	filter, args := dateFilter(r, []any{uid})

	var totals models.PeriodTotals
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0)  AS income,
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0) AS expense
		FROM cost_entries
		WHERE user_id = $1`+filter,
		args...,
	).Scan(&totals.Income, &totals.Expense)
	if err != nil {
		return models.PeriodTotals{}, errs.NewDatabaseError("read", "failed to sum totals", err)
	}
	return totals, nil
}

// ---- Helpers ----

// dateFilter appends inclusive bounds on entry_date for whichever sides of
// the range are set.
func dateFilter(r dto.DateRange, args []any) (string, []any) {
	var sb strings.Builder
	if r.Start != nil {
		args = append(args, dateParam(*r.Start))
		fmt.Fprintf(&sb, " AND entry_date >= $%d", len(args))
	}
	if r.End != nil {
		args = append(args, dateParam(*r.End))
		fmt.Fprintf(&sb, " AND entry_date <= $%d", len(args))
	}
	return sb.String(), args
}

func dateParam(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func optDateParam(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := dateParam(*d)
	return &t
}

func optDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := civil.DateOf(*t)
	return &d
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		tx                 models.Transaction
		day                time.Time
		startDate, endDate *time.Time
	)
	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.Type, &tx.Title, &tx.Description, &tx.Amount, &tx.Category, &tx.Subcategory,
		&day, &tx.Time, &tx.TransactionType, &tx.Frequency, &startDate, &endDate, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.Date = civil.DateOf(day)
	tx.StartDate = optDate(startDate)
	tx.EndDate = optDate(endDate)
	return &tx, nil
}
