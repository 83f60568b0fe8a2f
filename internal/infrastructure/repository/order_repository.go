package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).
		Preload("Table").
		Preload("Lines").
		Preload("Lines.Dish").
		Preload("Lines.Options").
		Preload("Invoice").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).
		Preload("Lines").
		Where("table_id = ? AND status NOT IN ?", tableID,
			[]enum.OrderStatus{enum.OrderStatusClosed, enum.OrderStatusCancelled}).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return conn(ctx, r.db).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := conn(ctx, r.db).Model(&entity.Order{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Table").
		Preload("Lines").
		Preload("Lines.Dish").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

type orderLineRepository struct {
	db *gorm.DB
}

// NewOrderLineRepository creates a new order line repository
func NewOrderLineRepository(db *gorm.DB) domainRepo.OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) CreateBatch(ctx context.Context, lines []entity.OrderLine) error {
	return conn(ctx, r.db).Create(&lines).Error
}

func (r *orderLineRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error) {
	var line entity.OrderLine
	err := conn(ctx, r.db).
		Preload("Dish").
		Preload("Options").
		First(&line, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &line, err
}

func (r *orderLineRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := conn(ctx, r.db).
		Preload("Dish").
		Preload("Options").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *orderLineRepository) Update(ctx context.Context, line *entity.OrderLine) error {
	return conn(ctx, r.db).Save(line).Error
}

func (r *orderLineRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.LineStatus) error {
	return conn(ctx, r.db).Model(&entity.OrderLine{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderLineRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := conn(ctx, r.db).Delete(&entity.OrderLineOption{}, "order_line_id IN ?", ids).Error; err != nil {
		return err
	}
	return conn(ctx, r.db).Delete(&entity.OrderLine{}, "id IN ?", ids).Error
}

func (r *orderLineRepository) MoveToOrder(ctx context.Context, lineIDs []uuid.UUID, orderID uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Model(&entity.OrderLine{}).
		Where("id IN ?", lineIDs).
		Update("order_id", orderID).Error
}
