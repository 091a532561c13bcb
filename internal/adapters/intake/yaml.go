// Package intake reads QC submissions prepared outside this tool (a form export
// or a hand-written YAML file) and turns them into domain submissions.
package intake

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/qc/internal/core/submission"
)

// File is the on-disk shape of a submission.
// Photo paths are resolved relative to the file's directory.
type File struct {
	Project       string            `yaml:"project"`
	Builder       string            `yaml:"builder"`
	LotNumber     string            `yaml:"lot_number"`
	QCDate        string            `yaml:"qc_date"`
	InstallDate   string            `yaml:"install_date"`
	InstallerName string            `yaml:"installer_name"`
	QCManager     string            `yaml:"qc_manager"`
	SubmittedBy   string            `yaml:"submitted_by"`
	Checklist     map[string]bool   `yaml:"checklist"`
	Photos        map[string]string `yaml:"photos"`
	Notes         string            `yaml:"notes"`
}

// Loader converts submission files into submissions.
type Loader struct {
	// Now supplies the default QC date. Defaults to time.Now.
	Now func() time.Time
}

// NewLoader creates a loader using the wall clock.
func NewLoader() *Loader {
	return &Loader{Now: time.Now}
}

// LoadFile reads and parses a submission file from disk.
func (l *Loader) LoadFile(path string) (*submission.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intake: read %s: %w", path, err)
	}
	s, err := l.Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("intake: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML submission. Photo files are read from baseDir.
// Slots without a path stay empty so the dispatch guard can name them.
func (l *Loader) Parse(data []byte, baseDir string) (*submission.Submission, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("submission is empty")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}

	qcDate := f.QCDate
	if qcDate == "" {
		qcDate = l.now().Format("2006-01-02")
	}

	s := submission.New(submission.Job{
		Project:       strings.TrimSpace(f.Project),
		Builder:       strings.TrimSpace(f.Builder),
		LotNumber:     strings.TrimSpace(f.LotNumber),
		QCDate:        qcDate,
		InstallDate:   f.InstallDate,
		InstallerName: f.InstallerName,
		QCManager:     f.QCManager,
	})
	s.SubmittedBy = f.SubmittedBy
	s.Notes = strings.TrimRight(f.Notes, "\n")

	var unknown []string
	for label, passed := range f.Checklist {
		if err := s.SetCheck(label, passed); err != nil {
			unknown = append(unknown, fmt.Sprintf("checklist item %q", label))
		}
	}

	for slot, p := range f.Photos {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("photo %q: %w", slot, err)
		}
		if err := s.SetPhoto(slot, data); err != nil {
			unknown = append(unknown, fmt.Sprintf("photo slot %q", slot))
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}

	return s, nil
}

func (l *Loader) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}
