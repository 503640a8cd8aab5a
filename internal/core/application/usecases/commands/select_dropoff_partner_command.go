package commands

import (
	"errors"
	"strings"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

var ErrSelectDropoffPartnerCommandIsNotConstructed = errors.New(
	"SelectDropoffPartnerCommand must be created via NewSelectDropoffPartnerCommand constructor",
)

// SelectDropoffPartnerCommand chooses the partner the bike is returned to.
type SelectDropoffPartnerCommand struct { //nolint:recvcheck //using for validation
	wizardID  kernel.UUID
	partnerID string

	guard guard.ConstructorGuard
}

func NewSelectDropoffPartnerCommand(wizardID kernel.UUID, partnerID string) (SelectDropoffPartnerCommand, error) {
	cmd := SelectDropoffPartnerCommand{
		wizardID:  wizardID,
		partnerID: strings.TrimSpace(partnerID),
		guard:     guard.NewConstructorGuard(),
	}

	var partnerErr error
	if cmd.partnerID == "" {
		partnerErr = errs.NewValueIsRequiredError("partnerId")
	}
	if err := errors.Join(wizardID.Validate(), partnerErr); err != nil {
		return SelectDropoffPartnerCommand{}, err
	}

	return cmd, nil
}

func (c SelectDropoffPartnerCommand) Validate() error {
	return c.guard.Validate(ErrSelectDropoffPartnerCommandIsNotConstructed)
}

func (c SelectDropoffPartnerCommand) WizardID() kernel.UUID {
	return c.wizardID
}

func (c SelectDropoffPartnerCommand) PartnerID() string {
	return c.partnerID
}
