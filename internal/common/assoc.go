package common

import (
	"context"
	"database/sql"
	"fmt"
)

// AssocSyncer reconciles a many-to-many join table so that the rows for a
// given entity match a target label set. The strategy is delete-then-insert
// rather than a set diff: a few extra writes buy trivially correct
// replacement semantics.
type AssocSyncer[L any] struct {
	db        *sql.DB
	table     string
	entityCol string
	labelCol  string
	resolve   func(ctx context.Context, label L) (int, error)
}

// NewAssocSyncer builds a syncer for the given join table. resolve maps a
// label to the surrogate id of its row in the label table, creating the row
// when the label does not exist yet.
func NewAssocSyncer[L any](db *sql.DB, table, entityCol, labelCol string, resolve func(ctx context.Context, label L) (int, error)) *AssocSyncer[L] {
	return &AssocSyncer[L]{
		db:        db,
		table:     table,
		entityCol: entityCol,
		labelCol:  labelCol,
		resolve:   resolve,
	}
}

// Sync replaces every association row for entityID with one row per label.
// A failure mid-way leaves the entity with a partial association set; this
// is reported through PartialSyncError and must not be masked, but callers
// treat it as best-effort relative to the primary entity write.
func (s *AssocSyncer[L]) Sync(ctx context.Context, entityID int, labels []L) error {
	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", s.table, s.entityCol)
	_, err := s.db.ExecContext(ctx, deleteQuery, entityID)
	if err != nil {
		return fmt.Errorf("could not clear associations on %s: %w", s.table, err)
	}

	insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", s.table, s.entityCol, s.labelCol)

	for applied, label := range labels {
		labelID, err := s.resolve(ctx, label)
		if err != nil {
			return &PartialSyncError{Table: s.table, Applied: applied, Total: len(labels), Err: err}
		}

		_, err = s.db.ExecContext(ctx, insertQuery, entityID, labelID)
		if err != nil {
			return &PartialSyncError{Table: s.table, Applied: applied, Total: len(labels), Err: err}
		}
	}

	return nil
}

// PartialSyncError records how far an association sync got before failing.
type PartialSyncError struct {
	Table   string
	Applied int
	Total   int
	Err     error
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("association sync on %s applied %d of %d rows: %s", e.Table, e.Applied, e.Total, e.Err)
}

func (e *PartialSyncError) Unwrap() error {
	return e.Err
}
