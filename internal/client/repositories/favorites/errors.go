package favorites

import "fmt"

// PersistenceError reports a failed durable-store operation. The mutation
// that produced it was aborted: neither the returned list nor durable state
// moved ahead of each other.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("favorites %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
