package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/adapters/out/postgres/pgerr"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker lets the unit of work collect saved aggregates so their domain
// events can be written to the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormOrderRepository creates a new GORM order repository. A nil tracker is
// allowed for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. The insert does nothing on an order number clash so that an
// enclosing transaction stays usable for the retry with a fresh number.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_number"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return pgerr.Classify("insert order", "order", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrOrderNumberTaken
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns if the stored version still matches.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"status":         aggregate.Status().Code(),
			"payment_status": aggregate.PaymentStatus().Code(),
			"updated_at":     aggregate.UpdatedAt(),
			"version":        gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pgerr.Classify("update order", "order", result.Error)
	}

	if result.RowsAffected == 0 {
		if err := r.ensureExists(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewConflictErrorWithCause(
			"version",
			fmt.Errorf("order %s was modified concurrently (expected version %d)", aggregate.ID(), aggregate.Version()),
		)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Classify("select order", "order", err)
	}

	return toDomain(dto)
}

// ListActiveByCustomer returns the customer's non-terminal orders, newest first.
func (r *GormOrderRepository) ListActiveByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.listActive(ctx, "customer_id", customerID)
}

// ListActiveByRestaurant returns the restaurant's non-terminal orders, newest first.
func (r *GormOrderRepository) ListActiveByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	return r.listActive(ctx, "restaurant_id", restaurantID)
}

func (r *GormOrderRepository) listActive(ctx context.Context, column string, id kernel.UUID) ([]*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where(column+" = ? AND status IN ?", id.Bytes(), statusCodes(order.ActiveStatuses())).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Classify("list orders", "order", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes the order only while it is terminal in storage.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND status IN ?", id.Bytes(), statusCodes(order.TerminalStatuses())).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return pgerr.Classify("delete order", "order", result.Error)
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		return errs.NewInvalidStateErrorWithCause(
			"order",
			current.Status().String(),
			errors.New("only completed or cancelled orders can be deleted"),
		)
	}

	return nil
}

func (r *GormOrderRepository) ensureExists(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return pgerr.Classify("count orders", "order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}
