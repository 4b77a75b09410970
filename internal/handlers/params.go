package handlers

import (
	"encoding/json"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/GregMSThompson/cost-tracker/internal/dto"
	"github.com/GregMSThompson/cost-tracker/internal/errs"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.NewValidationError("invalid request body")
	}
	return nil
}

// dateRangeQuery reads startDate and endDate (YYYY-MM-DD). Either may be
// absent; an inverted range is rejected.
func dateRangeQuery(r *http.Request) (dto.DateRange, error) {
	var rng dto.DateRange
	q := r.URL.Query()

	if v := q.Get("startDate"); v != "" {
		d, err := civil.ParseDate(v)
		if err != nil {
			return rng, errs.NewValidationError("startDate must be a YYYY-MM-DD date")
		}
		rng.Start = &d
	}
	if v := q.Get("endDate"); v != "" {
		d, err := civil.ParseDate(v)
		if err != nil {
			return rng, errs.NewValidationError("endDate must be a YYYY-MM-DD date")
		}
		rng.End = &d
	}
	if rng.Bounded() && rng.Start.After(*rng.End) {
		return rng, errs.NewValidationError("startDate must not be after endDate")
	}
	return rng, nil
}
