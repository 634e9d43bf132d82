package ports

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrCorrupted = errors.New("corrupted record")
)

// CorruptedRecordError reports a stored record that exists but cannot be read.
// Version is the stored row version so a replacement can be saved over it.
type CorruptedRecordError struct {
	Version int64
	Err     error
}

func (e *CorruptedRecordError) Error() string {
	if e.Err == nil {
		return ErrCorrupted.Error()
	}
	return ErrCorrupted.Error() + ": " + e.Err.Error()
}

func (e *CorruptedRecordError) Unwrap() error { return e.Err }

func (e *CorruptedRecordError) Is(target error) bool { return target == ErrCorrupted }
