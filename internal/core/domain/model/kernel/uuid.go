package kernel

import (
	"fmt"

	"bikerental/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
// Every wizard id reaching the domain must come from one of the constructors.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID is the value object identifying wizard sessions. It wraps
// github.com/google/uuid so the domain never handles raw strings as ids.
//
// The zero value (nil UUID) is invalid. Build one with NewUUID,
// UUIDFromString or UUIDFromBytes. UUID is immutable and safe to share
// between goroutines.
//
// Example usage:
//
//	// A new session
//	id := kernel.NewUUID()
//
//	// An id taken from the :id path segment
//	id, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return errs.NewValueIsInvalidErrorWithCause("id", err)
//	}
//
//	// As an aggregate identifier
//	w, err := wizard.NewWizard(id)
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. It is how new wizard
// sessions get their id.
//
// Example:
//
//	w, err := wizard.NewWizard(kernel.NewUUID())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(w.ID().String()) // e.g. "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses an id from its text form. Accepted formats are the
// ones uuid.Parse knows:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// It is used when restoring snapshots and when reading ids sent by clients.
//
// Example:
//
//	id, err := kernel.UUIDFromString(snapshot.ID)
//	if err != nil {
//	    return nil, fmt.Errorf("snapshot id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte form, as stored by the
// postgres adapter. The nil UUID is rejected with ErrUUIDIsNotConstructed.
//
// Example:
//
//	raw := dto.ID[:]
//	id, err := kernel.UUIDFromBytes(raw)
//	if err != nil {
//	    return nil, fmt.Errorf("wizard row id: %w", err)
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// The nil UUID prints as all zeroes. Ids are logged and sent over HTTP in
// this form.
//
// Example:
//
//	logger.InfoContext(ctx, "wizard started", "wizard_id", id.String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, not a byte slice. Slice it for
// the raw bytes.
//
// Example:
//
//	dto := WizardDTO{ID: w.ID().Bytes()}
//	raw := w.ID().Bytes()[:]
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both ids hold the same value.
//
// Example:
//
//	if !restored.ID().IsEqual(current.ID()) {
//	    return errs.NewValueIsInvalidError("wizard id")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID. Aggregates
// call it from their constructors.
//
// Example:
//
//	func NewWizard(id kernel.UUID) (*Wizard, error) {
//	    if err := id.Validate(); err != nil {
//	        return nil, err
//	    }
//	    return &Wizard{id: id}, nil
//	}
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler so snapshots serialize ids as strings.
func (u UUID) MarshalText() ([]byte, error) {
	return u.id.MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UUID) UnmarshalText(data []byte) error {
	return u.id.UnmarshalText(data)
}
