// Package wizardrepo persists wizard sessions. The full aggregate is stored
// as a JSON snapshot next to the columns used for lookups and cleanup.
package wizardrepo

import (
	"encoding/json"
	"time"

	"bikerental/internal/core/domain/model/kernel"
	"bikerental/internal/core/domain/model/wizard"

	"github.com/google/uuid"
)

// WizardDTO is the row of the wizards table.
type WizardDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int64     `gorm:"not null"`
	Step      int       `gorm:"type:smallint;not null"`
	State     string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (WizardDTO) TableName() string {
	return "wizards"
}

func fromDomain(w *wizard.Wizard) (WizardDTO, error) {
	state, err := json.Marshal(w.Snapshot())
	if err != nil {
		return WizardDTO{}, err
	}

	return WizardDTO{
		ID:      w.ID().Bytes(),
		Version: w.Version(),
		Step:    int(w.Step()),
		State:   string(state),
	}, nil
}

// toDomain restores the aggregate. The version column wins over the one
// embedded in the snapshot.
func toDomain(dto WizardDTO) (*wizard.Wizard, error) {
	var s wizard.Snapshot
	if err := json.Unmarshal([]byte(dto.State), &s); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	s.ID = id.String()
	s.Version = dto.Version

	return wizard.RestoreWizard(s)
}
