// Package forecast contains the pure rules for reconciling QC install dates into
// the forecasting table.
package forecast

// Key is the composite key shared by qc_log and Forecast_Log.
type Key struct {
	Project   string
	Builder   string
	LotNumber string
}

// Entry is a QC-reported install date for one key.
type Entry struct {
	Key         Key
	InstallDate string
}

// Candidates returns the entries to apply, given QC entries ordered oldest first.
// When a key appears more than once the newest entry wins and older entries for
// that key are dropped; surviving entries keep their relative order.
func Candidates(entries []Entry) []Entry {
	last := make(map[Key]int, len(entries))
	for i, e := range entries {
		last[e.Key] = i
	}

	out := make([]Entry, 0, len(last))
	for i, e := range entries {
		if last[e.Key] == i {
			out = append(out, e)
		}
	}
	return out
}

// Result summarises one reconciliation run.
type Result struct {
	Scanned    int   // qc_log rows read
	Candidates int   // rows left after the newest-wins reduction
	Updated    int   // QC rows whose update touched at least one forecast row
	RowsWrote  int64 // forecast rows changed in total
}

// Record folds one update outcome into the result. A QC row counts as updated
// once, however many forecast rows its statement affected.
func (r *Result) Record(rowsAffected int64) {
	if rowsAffected > 0 {
		r.Updated++
		r.RowsWrote += rowsAffected
	}
}
