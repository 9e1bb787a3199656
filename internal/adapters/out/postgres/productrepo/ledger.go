package productrepo

import (
	"context"
	"errors"
	"math"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/product"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductLedger implements ports.ProductLedger.
type GormProductLedger struct {
	db *gorm.DB
}

func NewGormProductLedger(db *gorm.DB) *GormProductLedger {
	return &GormProductLedger{db: db}
}

// Reserve decrements stock with
//
//	UPDATE products SET quantity = quantity - $1 WHERE id = $2 AND quantity >= $1 RETURNING *
//
// Concurrent reservations of the same product queue on the row lock; the second one
// re-evaluates the condition against the committed quantity, so the last unit can be
// taken only once.
func (l *GormProductLedger) Reserve(ctx context.Context, productID kernel.UUID, quantity int) (product.Reservation, error) {
	if err := productID.Validate(); err != nil {
		return product.Reservation{}, err
	}
	if quantity <= 0 {
		return product.Reservation{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}

	var rows []ProductDTO
	result := l.db.WithContext(ctx).
		Model(&rows).
		Clauses(clause.Returning{}).
		Where("id = ? AND quantity >= ?", productID.Bytes(), quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return product.Reservation{}, pgerr.Classify("reserve stock", "product", result.Error)
	}

	if result.RowsAffected == 0 || len(rows) == 0 {
		current, err := l.Get(ctx, productID)
		if err != nil {
			return product.Reservation{}, err
		}
		return product.Reservation{}, errs.NewInsufficientStockError(
			productID.String(), current.Name(), quantity, current.Quantity(),
		)
	}

	return toReservation(rows[0], quantity)
}

// Release gives back units. Releasing a product that no longer exists is reported,
// not ignored.
func (l *GormProductLedger) Release(ctx context.Context, productID kernel.UUID, quantity int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}

	result := l.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", productID.Bytes()).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return pgerr.Classify("release stock", "product", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	return nil
}

// Get reads a product without locking it.
func (l *GormProductLedger) Get(ctx context.Context, productID kernel.UUID) (*product.Product, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := l.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", productID.String())
		}
		return nil, pgerr.Classify("select product", "product", err)
	}

	return toDomain(dto)
}

// Save upserts catalog data. The catalog is owned by another service; Save exists
// for fixtures and local seeding.
func (l *GormProductLedger) Save(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	err := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	return pgerr.Classify("save product", "product", err)
}
