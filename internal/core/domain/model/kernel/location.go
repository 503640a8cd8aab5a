package kernel

import (
	"errors"
	"fmt"
	"strings"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when using a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location references a rental location known to the catalog. Only the id is
// mandatory; name and address are display data echoed back by the backend.
//
// Example:
//
//	pickup, err := kernel.NewLocation("loc-12", "Central Station", "Station Sq. 1")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pickup) // Central Station (loc-12)
type Location struct { //nolint:recvcheck //using for validation
	id      string
	name    string
	address string
	guard   guard.ConstructorGuard
}

// NewLocation validates and builds a Location. Surrounding whitespace is trimmed.
func NewLocation(id string, name string, address string) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setID(id), loc.setName(name), loc.setAddress(address)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate reports whether the Location was built by NewLocation.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) ID() string {
	return l.id
}

func (l Location) Name() string {
	return l.name
}

func (l Location) Address() string {
	return l.address
}

// DisplayName returns the name, or the id when the location has no name.
func (l Location) DisplayName() string {
	if l.name != "" {
		return l.name
	}
	return l.id
}

func (l Location) String() string {
	if l.name == "" {
		return fmt.Sprintf("Location(%s)", l.id)
	}
	return fmt.Sprintf("%s (%s)", l.name, l.id)
}

// IsEqual compares locations by id. Both must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return l.id == other.id, nil
}

func (l *Location) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("location id")
	}
	l.id = id
	return nil
}

func (l *Location) setName(name string) error {
	l.name = strings.TrimSpace(name)
	return nil
}

func (l *Location) setAddress(address string) error {
	l.address = strings.TrimSpace(address)
	return nil
}
