package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/rsakit/internal/audit"
	kerrors "github.com/PolarWolf314/rsakit/internal/errors"
)

const (
	auditTimestampLayout = "2006-01-02T15:04:05.000000Z"
	dateLayout           = "2006-01-02"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	StoreDir string

	// Key keeps only entries for this key name.
	Key string

	// Operations keeps only these operations (comma-separated).
	Operations string

	// Since keeps entries on or after this date (YYYY-MM-DD).
	Since string

	// Until keeps entries on or before this date (YYYY-MM-DD).
	Until string

	// Limit keeps the N most recent entries. Zero means no limit.
	Limit int

	// Reverse orders entries newest first.
	Reverse bool
}

// HistoryResult contains the filtered audit entries.
type HistoryResult struct {
	Entries []audit.Entry

	// Total is the number of entries before filtering.
	Total int
}

// History reads and filters the store's audit log.
// A store without a log yields no entries.
//
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	var since, until time.Time
	var err error
	if opts.Since != "" {
		if since, err = time.Parse(dateLayout, opts.Since); err != nil {
			return nil, fmt.Errorf("%w: --since must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}
	if opts.Until != "" {
		if until, err = time.Parse(dateLayout, opts.Until); err != nil {
			return nil, fmt.Errorf("%w: --until must be YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	_, store, err := openStore(opts.StoreDir)
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(store.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	var ops []string
	for _, op := range strings.Split(opts.Operations, ",") {
		if op = strings.ToLower(strings.TrimSpace(op)); op != "" {
			ops = append(ops, op)
		}
	}

	filtered := make([]audit.Entry, 0, len(entries))
	for _, e := range entries {
		if opts.Key != "" && e.Key != opts.Key {
			continue
		}
		if len(ops) > 0 && !slices.Contains(ops, strings.ToLower(e.Operation)) {
			continue
		}
		if !since.IsZero() || !until.IsZero() {
			t, ok := parseTimestamp(e.Timestamp)
			if !ok {
				continue
			}
			if !since.IsZero() && t.Before(since) {
				continue
			}
			if !until.IsZero() && t.After(until) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(filtered)
	}

	return &HistoryResult{Entries: filtered, Total: len(entries)}, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(auditTimestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDateTime formats an audit timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarises an entry's operation-specific fields.
func FormatDetails(e audit.Entry) string {
	var parts []string
	if e.Bits > 0 {
		parts = append(parts, fmt.Sprintf("%d bits", e.Bits))
	}
	switch e.Operation {
	case audit.OpGenerate:
		if e.Count > 1 {
			parts = append(parts, fmt.Sprintf("batch of %d", e.Count))
		}
		if e.Seeded {
			parts = append(parts, "seeded")
		}
	case audit.OpApply:
		if e.Private {
			parts = append(parts, "private")
		} else {
			parts = append(parts, "public")
		}
		if e.Blocks {
			parts = append(parts, "blocks")
		}
	}
	return strings.Join(parts, ", ")
}
