// Package postgres provides the GORM-based Unit of Work for wizard sessions.
// A unit of work owns one database transaction and hands out repositories
// bound to it.
//
// Key Features:
//   - One transaction per command handler call
//   - Repositories bound to the open transaction, or to the pool outside one
//   - Tracking of the wizards written, in write order
//   - Optimistic concurrency through the wizard row version
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	w, err := uow.WizardRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err := w.Apply(event); err != nil {
//	    return err
//	}
//	if err := uow.WizardRepository().Update(ctx, w); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Reads outside a transaction:
//
//	uow := factory.Create()
//	w, err := uow.WizardRepository().Get(ctx, id)
//
// Error Handling:
//   - A failed Begin leaves the unit of work without a transaction
//   - Rollback after Commit returns gorm.ErrInvalidTransaction, so a deferred
//     Rollback may ignore its result
//   - A version conflict surfaces from Update, before Commit
//
// Concurrency:
//   - Each UnitOfWork instance holds its own transaction; goroutines must
//     not share one.
//   - Concurrent writers to the same wizard are serialized by the row
//     version, not by locks. The loser gets errs.ErrVersionIsInvalid.
package postgres

import (
	"context"

	"bikerental/internal/adapters/out/postgres/wizardrepo"
	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// The list is kept for callers that act on what a transaction wrote.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Every handler call gets a fresh unit of work, so
// concurrent requests never share transaction state.
//
// Example:
//
//	factory := NewGormUnitOfWorkFactory(gormDB)
//	handler := commands.NewGoBackCommandHandler(
//	    cmd.FuncWizardUoWFactory(func() commands.WizardUoW { return factory.Create() }),
//	)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The pool behind db is shared by every unit of work the factory creates.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state and an
// empty tracking list.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.WizardRepository().Add(ctx, w); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and records the
// aggregates written through its repositories.
//
// The wizard repository reports every Add and Update back through
// TrackAggregate, so after Commit the caller can see which sessions the
// transaction touched.
//
// Example usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("begin: %w", err)
//	}
//	defer uow.Rollback(ctx)
//
//	repo := uow.WizardRepository()
//	w, err := repo.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err = w.Apply(wizard.SteppedBack{}); err != nil {
//	    return err
//	}
//	if err = repo.Update(ctx, w); err != nil {
//	    return fmt.Errorf("update wizard: %w", err)
//	}
//	if err = uow.Commit(ctx); err != nil {
//	    return fmt.Errorf("commit: %w", err)
//	}
//
//	for _, id := range uow.TrackedAggregates() {
//	    logger.InfoContext(ctx, "wizard saved", "wizard_id", id.String())
//	}
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens a transaction bound to ctx. Repositories handed out afterwards
// run inside it. Calling it again while one is open is a no-op, so nested
// transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the open transaction. Returns gorm.ErrInvalidTransaction
// when none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction. Returns gorm.ErrInvalidTransaction
// when none is open, which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// WizardRepository returns a repository running inside the current
// transaction, or directly against the pool when none is open.
func (uow *GormUnitOfWork) WizardRepository() ports.WizardRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return wizardrepo.NewGormWizardRepository(db, uow)
}

// TrackAggregate registers an aggregate written within this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the ids of the aggregates written so far, in
// write order.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
