package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, search string) ([]entity.Customer, error) {
	var customers []entity.Customer
	query := conn(ctx, r.db)
	if search != "" {
		query = query.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := query.Order("name ASC").Find(&customers).Error
	return customers, err
}

type pointHistoryRepository struct {
	db *gorm.DB
}

// NewPointHistoryRepository creates a new point history repository
func NewPointHistoryRepository(db *gorm.DB) domainRepo.PointHistoryRepository {
	return &pointHistoryRepository{db: db}
}

func (r *pointHistoryRepository) Create(ctx context.Context, history *entity.PointHistory) error {
	return conn(ctx, r.db).Create(history).Error
}

func (r *pointHistoryRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.PointHistory, error) {
	var histories []entity.PointHistory
	err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&histories).Error
	return histories, err
}
