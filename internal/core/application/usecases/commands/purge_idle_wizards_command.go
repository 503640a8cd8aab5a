package commands

import (
	"errors"
	"fmt"
	"time"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

var ErrPurgeIdleWizardsCommandIsNotConstructed = errors.New(
	"PurgeIdleWizardsCommand must be created via NewPurgeIdleWizardsCommand constructor",
)

// PurgeIdleWizardsCommand removes wizard sessions abandoned for longer than
// idleFor. It is issued by the cleanup job.
type PurgeIdleWizardsCommand struct { //nolint:recvcheck //using for validation
	idleFor time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeIdleWizardsCommand(idleFor time.Duration) (PurgeIdleWizardsCommand, error) {
	if idleFor <= 0 {
		return PurgeIdleWizardsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"idleFor",
			fmt.Errorf("%s is not positive", idleFor),
		)
	}

	return PurgeIdleWizardsCommand{
		idleFor: idleFor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeIdleWizardsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeIdleWizardsCommandIsNotConstructed)
}

func (c PurgeIdleWizardsCommand) IdleFor() time.Duration {
	return c.idleFor
}
