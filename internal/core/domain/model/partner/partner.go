// Package partner models the rental shops that accept drop-offs.
package partner

import (
	"errors"
	"fmt"
	"strings"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

// addressNotAvailable is shown when neither the partner nor the drop-off
// location provides an address.
const addressNotAvailable = "Address not available"

var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")

// Partner is a shop resolved from the partner directory.
type Partner struct {
	id          string
	companyName string
	address     string
	mapAddress  string

	guard guard.ConstructorGuard
}

// NewPartner validates and builds a Partner. address and mapAddress are optional.
func NewPartner(id string, companyName string, address string, mapAddress string) (*Partner, error) {
	p := &Partner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setID(id), p.setCompanyName(companyName)); err != nil {
		return nil, err
	}
	p.address = strings.TrimSpace(address)
	p.mapAddress = strings.TrimSpace(mapAddress)

	return p, nil
}

func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

func (p *Partner) ID() string {
	return p.id
}

func (p *Partner) CompanyName() string {
	return p.companyName
}

func (p *Partner) Address() string {
	return p.address
}

func (p *Partner) MapAddress() string {
	return p.mapAddress
}

// DropoffLabel composes the human-readable drop-off location sent with the
// booking: "{company} - {address}". The address is the first non-empty of the
// partner address, the partner map address, and fallbackName (usually the
// drop-off location name).
func (p *Partner) DropoffLabel(fallbackName string) string {
	where := addressNotAvailable
	for _, candidate := range []string{p.address, p.mapAddress, strings.TrimSpace(fallbackName)} {
		if candidate != "" {
			where = candidate
			break
		}
	}
	return fmt.Sprintf("%s - %s", p.companyName, where)
}

func (p *Partner) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("partner id")
	}
	p.id = id
	return nil
}

func (p *Partner) setCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("company name")
	}
	p.companyName = name
	return nil
}
