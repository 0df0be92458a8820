// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested record does not exist. It is
// terminal for a single analysis: no metrics are computed and nothing is
// written. Storage implementations return it (possibly wrapped) from
// FetchRecord.
var ErrNotFound = errors.New("record not found")

// PersistenceError reports that scores were computed but the write-back did
// not fully persist. Callers receive the computed metrics alongside it.
type PersistenceError struct {
	RecordID string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting metrics for %s: %v", e.RecordID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
