package service

import (
	"context"

	"choubo/internal/core"
)

// Ports for outbound adapters.
type (
	// RecordSource supplies the validated bookkeeping entries for a
	// date range, in entry order.
	RecordSource interface {
		ListRecords(ctx context.Context, from, to core.Date) ([]core.Record, error)
	}

	// PreferenceStore remembers the organization label printed on the
	// last successful export.
	PreferenceStore interface {
		LastOrganization(ctx context.Context) (string, error)
		SetLastOrganization(ctx context.Context, label string) error
	}
)
