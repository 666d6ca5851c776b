package acceptance

import (
	"errors"
	"fmt"

	"depo-system/internal/database/models"
)

// Outcome identifies which of the mutually exclusive scan results
// occurred. Exactly one outcome applies per scan.
type Outcome string

const (
	// Pre-acceptance outcomes (box level).
	OutcomeAccepted        Outcome = "accepted"
	OutcomeAlreadyAccepted Outcome = "already-accepted"
	OutcomeWrongStoreFlag  Outcome = "wrong-store-flagged"

	// Goods-acceptance outcomes (item level).
	OutcomeGoodsAccepted      Outcome = "goods-accepted"
	OutcomeDuplicateScan      Outcome = "duplicate-scan"
	OutcomeMisroutedAccepted  Outcome = "misrouted-accepted"
	OutcomeUnregisteredInsert Outcome = "unregistered-inserted"
	OutcomePrefixRejected     Outcome = "prefix-rejected"

	// Addressing outcome.
	OutcomeTransitioned Outcome = "transitioned"
)

var (
	ErrBoxNotFound  = errors.New("box not found")
	ErrItemNotFound = errors.New("item not found")
	ErrWrongStore   = errors.New("item belongs to another store")
)

// PreconditionError reports an addressing attempt before both
// acceptance stages completed.
type PreconditionError struct {
	MissingStage string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s not completed", e.MissingStage)
}

// StateMismatchError reports an addressing attempt from an unexpected
// current location.
type StateMismatchError struct {
	Current  models.Location
	Expected models.Location
}

func (e *StateMismatchError) Error() string {
	return fmt.Sprintf("item is at %q, expected %q", e.Current, e.Expected)
}
