// Package submission contains the pure domain model for a garage-door QC submission.
// The checklist items and photo slots are fixed, ordered catalogues; report layout
// depends on their order.
package submission

import "fmt"

// ChecklistItems is the fixed, ordered QC checklist.
var ChecklistItems = []string{
	"All Screws Installed",
	"Center Bearing Plate has Sleeve Anchor",
	"Door has correct tension",
	"Track Installed correctly",
	"Motor working",
	"Remotes working",
	"Sensor aligned",
	"No visible damage",
	"Trim Installed",
}

// PhotoSlots is the fixed, ordered set of required photos.
var PhotoSlots = []string{
	"Inside Garage Door",
	"Center Bearing Plate",
	"Motor",
	"Back Drop (Left)",
	"Back Drop (Right)",
	"Outside Garage Door",
}

// Job holds the job metadata entered on the form.
// Dates are kept as YYYY-MM-DD strings, which is how qc_log and Forecast_Log store them.
type Job struct {
	Project       string
	Builder       string
	LotNumber     string
	QCDate        string
	InstallDate   string
	InstallerName string
	QCManager     string
}

// CheckItem is one checklist line.
type CheckItem struct {
	Label  string
	Passed bool
}

// Photo is one photo slot. Data is empty when the slot was not captured.
type Photo struct {
	Slot string
	Data []byte
}

// Empty reports whether the slot has no image bytes.
func (p Photo) Empty() bool {
	return len(p.Data) == 0
}

// Field is one label/value line of job metadata.
type Field struct {
	Label string
	Value string
}

// Submission is the in-memory state of one QC form submission.
type Submission struct {
	Job         Job
	Checklist   []CheckItem
	Photos      []Photo
	Notes       string
	SubmittedBy string
}

// New returns a submission with every checklist item unchecked and every photo slot empty,
// in catalogue order.
func New(job Job) *Submission {
	s := &Submission{
		Job:       job,
		Checklist: make([]CheckItem, len(ChecklistItems)),
		Photos:    make([]Photo, len(PhotoSlots)),
	}
	for i, label := range ChecklistItems {
		s.Checklist[i] = CheckItem{Label: label}
	}
	for i, slot := range PhotoSlots {
		s.Photos[i] = Photo{Slot: slot}
	}
	return s
}

// SetCheck marks a checklist item by label.
func (s *Submission) SetCheck(label string, passed bool) error {
	for i := range s.Checklist {
		if s.Checklist[i].Label == label {
			s.Checklist[i].Passed = passed
			return nil
		}
	}
	return fmt.Errorf("unknown checklist item %q", label)
}

// SetPhoto stores image bytes for a photo slot by name.
func (s *Submission) SetPhoto(slot string, data []byte) error {
	for i := range s.Photos {
		if s.Photos[i].Slot == slot {
			s.Photos[i].Data = data
			return nil
		}
	}
	return fmt.Errorf("unknown photo slot %q", slot)
}

// FormData returns the job metadata as ordered report lines.
func (s *Submission) FormData() []Field {
	return []Field{
		{Label: "Project", Value: s.Job.Project},
		{Label: "Builder", Value: s.Job.Builder},
		{Label: "Lot Number", Value: s.Job.LotNumber},
		{Label: "QC Date", Value: s.Job.QCDate},
		{Label: "Install Date", Value: s.Job.InstallDate},
		{Label: "Installer Name", Value: s.Job.InstallerName},
		{Label: "QC Manager", Value: s.Job.QCManager},
	}
}

// Submitter returns who to record in qc_log: SubmittedBy, else the installer.
func (s *Submission) Submitter() string {
	if s.SubmittedBy != "" {
		return s.SubmittedBy
	}
	return s.Job.InstallerName
}

// EmailSubject is the subject line used when the report is mailed.
func (s *Submission) EmailSubject() string {
	return fmt.Sprintf("QC Report - %s Lot %s", s.Job.Project, s.Job.LotNumber)
}

// EmailBody is the plain-text body used when the report is mailed.
const EmailBody = "Attached is the completed Garage Door QC Report."
