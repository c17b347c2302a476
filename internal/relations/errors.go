package relations

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers a missing person, relation or catalog type.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput covers malformed relation payloads (both or neither
	// target forms populated, missing external name fields).
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyLinked guards LinkExternal against double-linking an edge
	// that already references a registered person.
	ErrAlreadyLinked = errors.New("relation already references a registered person")
)

// DuplicateError is returned by Create when checkDuplicates is set and
// plausible existing external relatives were found. The caller is expected
// to surface the candidates so the user can link instead of duplicating.
type DuplicateError struct {
	Candidates []DuplicateCandidate
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("found %d possible existing record(s) for this relative", len(e.Candidates))
}
