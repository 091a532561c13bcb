package secondary

import "context"

// ReportArchive stores a copy of each generated report.
type ReportArchive interface {
	// Put stores the document under key and returns its location.
	Put(ctx context.Context, key string, document []byte) (string, error)
}
