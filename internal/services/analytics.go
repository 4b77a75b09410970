package services

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/models"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

const defaultChartWindowDays = 90

var hundred = decimal.NewFromInt(100)

type analyticsStore interface {
	DailyTotals(ctx context.Context, uid string, r dto.DateRange) ([]models.DailyTotal, error)
	Totals(ctx context.Context, uid string, r dto.DateRange) (models.PeriodTotals, error)
}

type analyticsService struct {
	store      analyticsStore
	loc        *time.Location
	windowDays int
	now        func() time.Time
}

// NewAnalyticsService builds the summary and chart service. loc decides which
// calendar day "today" is; windowDays is the default chart lookback.
func NewAnalyticsService(store analyticsStore, loc *time.Location, windowDays int) *analyticsService {
	if loc == nil {
		loc = time.UTC
	}
	if windowDays <= 0 {
		windowDays = defaultChartWindowDays
	}
	return &analyticsService{
		store:      store,
		loc:        loc,
		windowDays: windowDays,
		now:        time.Now,
	}
}

func (s *analyticsService) today() civil.Date {
	return civil.DateOf(s.now().In(s.loc))
}

// ComputeSummary returns income, expense and difference totals for the range
// together with the percentage change against the preceding window of equal
// length. Changes are only computed when both bounds are present.
func (s *analyticsService) ComputeSummary(ctx context.Context, uid string, r dto.DateRange) (dto.SummaryResult, error) {
	log := logger.FromContext(ctx)

	var cur, prev models.PeriodTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = s.store.Totals(gctx, uid, r)
		return err
	})
	if r.Bounded() {
		prevRange := previousPeriod(*r.Start, *r.End)
		g.Go(func() error {
			var err error
			prev, err = s.store.Totals(gctx, uid, prevRange)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("failed to load period totals", "error", err)
		return dto.SummaryResult{}, err
	}

	incomeChange := percentChange(cur.Income, prev.Income)
	expenseChange := percentChange(cur.Expense, prev.Expense)

	return dto.SummaryResult{
		Income: dto.ChangeTotal{
			Total:  cur.Income.InexactFloat64(),
			Change: incomeChange.InexactFloat64(),
		},
		Expense: dto.ChangeTotal{
			Total:  cur.Expense.InexactFloat64(),
			Change: expenseChange.InexactFloat64(),
		},
		Difference: dto.ChangeTotal{
			Total:  cur.Income.Sub(cur.Expense).InexactFloat64(),
			Change: incomeChange.Sub(expenseChange).InexactFloat64(),
		},
	}, nil
}

// BuildChartSeries returns one point per calendar day of the effective range,
// ascending and zero-filled.
func (s *analyticsService) BuildChartSeries(ctx context.Context, uid string, r dto.DateRange) (dto.ChartResult, error) {
	log := logger.FromContext(ctx)
	today := s.today()

	singleDay := r.Bounded() && *r.Start == *r.End

	filter := r
	switch {
	case r.Empty():
		from := today.AddDays(-s.windowDays)
		filter = dto.DateRange{Start: &from, End: &today}
	case singleDay:
		// rows stored a day early are folded into the selected day below
		prev := r.Start.AddDays(-1)
		filter = dto.DateRange{Start: &prev, End: r.End}
	}

	rows, err := s.store.DailyTotals(ctx, uid, filter)
	if err != nil {
		log.Error("failed to load daily totals", "error", err)
		return dto.ChartResult{}, err
	}

	// Only an explicit [start, end] selection yields a series without data.
	if len(rows) == 0 && !r.Bounded() {
		return dto.ChartResult{ChartData: []dto.ChartPoint{}}, nil
	}

	var from, to civil.Date
	switch {
	case r.Bounded():
		from, to = *r.Start, *r.End
	case r.Start != nil:
		from, to = *r.Start, today
	case r.End != nil:
		from, to = earliest(rows), *r.End
	default:
		from, to = *filter.Start, *filter.End
	}

	byDate := make(map[civil.Date]dto.ChartPoint, len(rows))
	for _, row := range rows {
		day := row.Date
		if singleDay && day == r.Start.AddDays(-1) {
			day = *r.Start
		}
		p := byDate[day]
		p.Income += nullToFloat(row.Income)
		p.Expenses += nullToFloat(row.Expenses)
		byDate[day] = p
	}

	series := make([]dto.ChartPoint, 0, max(to.DaysSince(from)+1, 0))
	for day := from; !day.After(to); day = day.AddDays(1) {
		p := byDate[day]
		p.Date = day
		series = append(series, p)
	}

	if logger.IsDebugEnabled(ctx) {
		active := 0
		for _, p := range series {
			if p.Income != 0 || p.Expenses != 0 {
				active++
			}
		}
		log.Debug("chart series built", "from", from.String(), "to", to.String(), "rows", len(rows), "points", len(series), "activeDays", active)
	}
	return dto.ChartResult{ChartData: series, Count: len(series)}, nil
}

// previousPeriod returns the window of identical length ending the day before start.
func previousPeriod(start, end civil.Date) dto.DateRange {
	prevEnd := start.AddDays(-1)
	prevStart := prevEnd.AddDays(-end.DaysSince(start))
	return dto.DateRange{Start: &prevStart, End: &prevEnd}
}

// percentChange is zero when there is no positive baseline.
func percentChange(cur, prev decimal.Decimal) decimal.Decimal {
	if !prev.IsPositive() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(hundred)
}

func nullToFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}

func earliest(rows []models.DailyTotal) civil.Date {
	first := rows[0].Date
	for _, row := range rows[1:] {
		if row.Date.Before(first) {
			first = row.Date
		}
	}
	return first
}
