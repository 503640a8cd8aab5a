package commands

import (
	"errors"
	"strings"

	"bikerental/internal/pkg/errs"
	"bikerental/internal/pkg/guard"
)

var ErrResumeWizardCommandIsNotConstructed = errors.New(
	"ResumeWizardCommand must be created via NewResumeWizardCommand constructor",
)

// ResumeWizardCommand restores a wizard parked before the login redirect.
type ResumeWizardCommand struct { //nolint:recvcheck //using for validation
	resumeToken string

	guard guard.ConstructorGuard
}

func NewResumeWizardCommand(resumeToken string) (ResumeWizardCommand, error) {
	resumeToken = strings.TrimSpace(resumeToken)
	if resumeToken == "" {
		return ResumeWizardCommand{}, errs.NewValueIsRequiredError("resumeToken")
	}

	return ResumeWizardCommand{
		resumeToken: resumeToken,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ResumeWizardCommand) Validate() error {
	return c.guard.Validate(ErrResumeWizardCommandIsNotConstructed)
}

func (c ResumeWizardCommand) ResumeToken() string {
	return c.resumeToken
}
