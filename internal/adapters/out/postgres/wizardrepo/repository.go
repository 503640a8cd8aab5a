package wizardrepo

import (
	"context"
	"errors"
	"time"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"
	"bikerental/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWizardRepository implements ports.WizardRepository using GORM.
type GormWizardRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
	now     func() time.Time
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWizardRepository creates a new GORM wizard repository.
func NewGormWizardRepository(db *gorm.DB, tracker aggregateTracker) *GormWizardRepository {
	return &GormWizardRepository{
		db:      db,
		tracker: tracker,
		now:     time.Now,
	}
}

// Add saves a new wizard at version 1.
func (r *GormWizardRepository) Add(ctx context.Context, aggregate *wizard.Wizard) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	aggregate.SetVersion(1)
	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	now := r.now()
	dto.CreatedAt = now
	dto.UpdatedAt = now
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the wizard only if the stored version still matches the one
// it was loaded at, then bumps the version.
func (r *GormWizardRepository) Update(ctx context.Context, aggregate *wizard.Wizard) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := aggregate.Version()
	aggregate.SetVersion(loaded + 1)
	dto, err := fromDomain(aggregate)
	if err != nil {
		aggregate.SetVersion(loaded)
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&WizardDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Updates(map[string]any{
			"version":    dto.Version,
			"step":       dto.Step,
			"state":      dto.State,
			"updated_at": r.now(),
		})
	if result.Error != nil {
		aggregate.SetVersion(loaded)
		return result.Error
	}

	if result.RowsAffected == 0 {
		aggregate.SetVersion(loaded)
		return r.missingOrStale(ctx, aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a wizard by ID.
func (r *GormWizardRepository) Get(ctx context.Context, id kernel.UUID) (*wizard.Wizard, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WizardDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wizard", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the wizard if it exists.
func (r *GormWizardRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&WizardDTO{}, "id = ?", id.Bytes()).Error
}

// DeleteIdleSince removes every wizard last written before the given time.
func (r *GormWizardRepository) DeleteIdleSince(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&WizardDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (r *GormWizardRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&WizardDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("wizard", id.String())
	}

	return errs.NewVersionIsInvalidErrorWithCause("wizard")
}
