// Package principalrepo reads the account projection the identity service keeps in
// the ordering database.
package principalrepo

import (
	"context"
	"errors"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrincipalDTO is one account and its role code.
type PrincipalDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role string    `gorm:"type:varchar(16);not null"`
}

func (PrincipalDTO) TableName() string {
	return "principals"
}

// GormPrincipalDirectory implements ports.PrincipalDirectory.
type GormPrincipalDirectory struct {
	db *gorm.DB
}

func NewGormPrincipalDirectory(db *gorm.DB) *GormPrincipalDirectory {
	return &GormPrincipalDirectory{db: db}
}

// RoleOf returns the account's role or an ObjectNotFoundError.
func (d *GormPrincipalDirectory) RoleOf(ctx context.Context, id kernel.UUID) (kernel.Role, error) {
	if err := id.Validate(); err != nil {
		return kernel.UnknownRole, err
	}

	var dto PrincipalDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UnknownRole, errs.NewObjectNotFoundError("principal", id.String())
		}
		return kernel.UnknownRole, pgerr.Classify("select principal", "principal", err)
	}

	return kernel.ParseRole(dto.Role)
}

// Save upserts an account projection.
func (d *GormPrincipalDirectory) Save(ctx context.Context, id kernel.UUID, role kernel.Role) error {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return err
	}

	dto := PrincipalDTO{ID: id.Bytes(), Role: role.String()}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	return pgerr.Classify("save principal", "principal", err)
}
