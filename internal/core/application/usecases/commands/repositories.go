// Package commands contains the wizard interactions that change state.
// Every command follows the same pattern: constructor validation, a unit of
// work per transaction, and persistence of the wizard aggregate.
package commands

import (
	"context"

	"bikerental/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// WizardRepoFactory provides access to the wizard repository within a transaction.
	WizardRepoFactory interface {
		WizardRepository() ports.WizardRepository
	}

	// WizardUoW manages transactions for wizard operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.WizardRepository()
	//   // ... load, apply, update
	//
	//   err = uow.Commit(ctx)
	WizardUoW interface {
		TxManager
		WizardRepoFactory
	}

	// WizardUoWFactory creates new wizard unit of work instances.
	WizardUoWFactory interface {
		Create() WizardUoW
	}
)
