package inventory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestSnapshotInsertErrorMapsUniqueConstraint(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_report_snapshots_period_method",
	}

	if got := snapshotInsertError(pgErr); !errors.Is(got, ErrSnapshotExists) {
		t.Fatalf("expected ErrSnapshotExists, got %v", got)
	}

	// Wrapped driver errors must still map.
	wrapped := fmt.Errorf("exec insert: %w", pgErr)
	if got := snapshotInsertError(wrapped); !errors.Is(got, ErrSnapshotExists) {
		t.Fatalf("expected ErrSnapshotExists for wrapped error, got %v", got)
	}
}

func TestSnapshotInsertErrorPassesThroughOtherErrors(t *testing.T) {
	other := &pgconn.PgError{Code: "23502", ConstraintName: "report_snapshots_period_not_null"}
	if got := snapshotInsertError(other); !errors.Is(got, other) {
		t.Fatalf("expected passthrough, got %v", got)
	}

	plain := errors.New("connection reset")
	if got := snapshotInsertError(plain); got != plain {
		t.Fatalf("expected passthrough, got %v", got)
	}
	if snapshotInsertError(nil) != nil {
		t.Fatalf("expected nil passthrough")
	}
}
