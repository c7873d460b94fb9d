package report

import "time"

// Record summarises one evaluation run for a single model.
type Record struct {
	RunID   string    `json:"run_id"`
	Model   string    `json:"model"`
	Started time.Time `json:"started"`
	Folds   int       `json:"folds"`
	Lives   int       `json:"lives"`
	Skipped int       `json:"skipped"`
	MAE     float64   `json:"mae"`
	RMSE    float64   `json:"rmse"`
}

// SkipRate returns the fraction of degradation lives that were dropped.
func (r Record) SkipRate() float64 {
	total := r.Lives + r.Skipped
	if total == 0 {
		return 0
	}
	return float64(r.Skipped) / float64(total)
}

// Better reports whether r outperforms other, using MAE with RMSE as
// tie breaker. Lower is better for both.
func (r Record) Better(other Record) bool {
	if r.MAE != other.MAE {
		return r.MAE < other.MAE
	}
	return r.RMSE < other.RMSE
}
