package submission

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Missing []string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if len(r.Missing) > 0 {
		return &MissingPhotosError{Slots: r.Missing}
	}
	return fmt.Errorf("%s", r.Reason)
}

// MissingPhotosError names the photo slots that were left empty.
type MissingPhotosError struct {
	Slots []string
}

func (e *MissingPhotosError) Error() string {
	return "Please take all required photos: " + strings.Join(e.Slots, ", ")
}

// CanDispatch evaluates whether a submission may be rendered and sent.
// Rules:
// - Every catalogue photo slot must be present and non-empty
// - Job must carry project, builder and lot number (they key qc_log)
func CanDispatch(s *Submission) GuardResult {
	present := make(map[string]bool, len(s.Photos))
	for _, p := range s.Photos {
		if !p.Empty() {
			present[p.Slot] = true
		}
	}

	var missing []string
	for _, slot := range PhotoSlots {
		if !present[slot] {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("missing photos: %s", strings.Join(missing, ", ")),
			Missing: missing,
		}
	}

	var blank []string
	if strings.TrimSpace(s.Job.Project) == "" {
		blank = append(blank, "project")
	}
	if strings.TrimSpace(s.Job.Builder) == "" {
		blank = append(blank, "builder")
	}
	if strings.TrimSpace(s.Job.LotNumber) == "" {
		blank = append(blank, "lot number")
	}
	if len(blank) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("job is missing required fields: %s", strings.Join(blank, ", ")),
		}
	}

	return GuardResult{Allowed: true}
}
