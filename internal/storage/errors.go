package storage

import "fmt"

// PersistenceError reports that the backend could not read or write a key,
// e.g. because the medium is unavailable or over quota.
type PersistenceError struct {
	Op  string // "read", "write" or "delete"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// CorruptDataWarning reports a stored collection that could not be decoded.
// The collection is read as empty; the warning lets callers log or alert.
type CorruptDataWarning struct {
	Key string
	Err error
}

func (w CorruptDataWarning) String() string {
	return fmt.Sprintf("corrupt data under %s: %v", w.Key, w.Err)
}
