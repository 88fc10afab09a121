package stats

import (
	"context"

	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/store"
)

// Report contains precomputed data for score rendering.
type Report struct {
	Records []model.ScoreRecord
	Best    int
	HasBest bool
}

// NewReport wraps records and computes the best score among them.
func NewReport(records []model.ScoreRecord) Report {
	report := Report{Records: records}
	for _, r := range records {
		if !report.HasBest || r.Score > report.Best {
			report.Best = r.Score
			report.HasBest = true
		}
	}
	return report
}

// BuildReport loads scores matching the filter.
func BuildReport(ctx context.Context, st *store.Store, filter model.ScoresFilter) (Report, error) {
	records, err := st.ListResults(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return NewReport(records), nil
}
