package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
	"github.com/GregMSThompson/cost-tracker/internal/models"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := RunMigrations(url); err != nil {
		t.Fatalf("migrations error: %v", err)
	}
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		t.Fatalf("pool error: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := NewUserStore(pool).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user error: %v", err)
	}
	return user.ID
}

func seedTransaction(t *testing.T, s *transactionStore, uid, typ, amount string, day civil.Date) {
	t.Helper()
	tx := &models.Transaction{
		ID:              uuid.New().String(),
		UserID:          uid,
		Type:            typ,
		Title:           "seed",
		Amount:          decimal.RequireFromString(amount),
		Category:        "Vásárlások",
		Date:            day,
		TransactionType: models.KindOneTime,
	}
	if err := s.Create(context.Background(), tx); err != nil {
		t.Fatalf("seed transaction error: %v", err)
	}
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestTransactionAggregatesWithDatabase(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := NewTransactionStore(pool)

	uid := seedUser(t, pool)
	other := seedUser(t, pool)

	seedTransaction(t, s, uid, models.TypeExpense, "100", date(2024, 1, 5))
	seedTransaction(t, s, uid, models.TypeIncome, "200", date(2024, 1, 7))
	seedTransaction(t, s, uid, models.TypeIncome, "25.50", date(2024, 1, 7))
	seedTransaction(t, s, other, models.TypeIncome, "999", date(2024, 1, 6))

	start, end := date(2024, 1, 5), date(2024, 1, 7)
	days, err := s.DailyTotals(ctx, uid, dto.DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("DailyTotals error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Date != start || !days[0].Expenses.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("first day mismatch: %+v", days[0])
	}
	if days[1].Date != end || !days[1].Income.Decimal.Equal(decimal.RequireFromString("225.5")) {
		t.Fatalf("second day mismatch: %+v", days[1])
	}

	totals, err := s.Totals(ctx, uid, dto.DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if !totals.Income.Equal(decimal.RequireFromString("225.5")) || !totals.Expense.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("totals mismatch: %+v", totals)
	}

	empty, err := s.Totals(ctx, uid, dto.DateRange{Start: &end, End: &end})
	if err != nil {
		t.Fatalf("Totals error: %v", err)
	}
	if !empty.Expense.IsZero() {
		t.Fatalf("expected zero expense, got %v", empty.Expense)
	}
}

func TestTransactionCRUDWithDatabase(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := NewTransactionStore(pool)
	uid := seedUser(t, pool)

	tx := &models.Transaction{
		ID:              uuid.New().String(),
		UserID:          uid,
		Type:            models.TypeIncome,
		Title:           "Salary",
		Amount:          decimal.NewFromInt(1500),
		Category:        "Fizetés",
		Date:            date(2024, 2, 1),
		TransactionType: models.KindOneTime,
	}
	if err := s.Create(ctx, tx); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := s.Get(ctx, uid, tx.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Title != "Salary" || got.Date != tx.Date || !got.Amount.Equal(tx.Amount) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Title = "Bonus"
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	income := models.TypeIncome
	list, err := s.List(ctx, uid, dto.TransactionQuery{Type: &income})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Bonus" {
		t.Fatalf("list mismatch: %+v", list)
	}

	if _, err := s.Get(ctx, seedUser(t, pool), tx.ID); !isNotFound(err) {
		t.Fatalf("expected not found for another user, got %v", err)
	}
	if err := s.Delete(ctx, uid, "not-a-uuid"); !isNotFound(err) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}
	if err := s.Delete(ctx, uid, tx.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Delete(ctx, uid, tx.ID); !isNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	us := NewUserStore(pool)

	uid := seedUser(t, pool)
	existing, err := us.GetUser(ctx, uid)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}

	dup := *existing
	dup.ID = uuid.New().String()
	err = us.CreateUser(ctx, &dup)
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}

	byEmail, err := us.GetUserByEmail(ctx, existing.Email)
	if err != nil || byEmail.ID != uid {
		t.Fatalf("GetUserByEmail mismatch: %+v %v", byEmail, err)
	}
}

func isNotFound(err error) bool {
	var nf *errs.NotFoundError
	return errors.As(err, &nf)
}
