package service

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/email"
)

// RequestedItem is one (dish, quantity) pair to be checked against stock
type RequestedItem struct {
	DishID   uuid.UUID
	Quantity int
}

// Shortage reports one material whose on-hand stock cannot cover the
// requested quantity
type Shortage struct {
	MaterialID uuid.UUID `json:"material_id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	Required   float64   `json:"required"`
	Available  float64   `json:"available"`
}

// InventoryService is the stock ledger: it answers whether on-hand
// stock covers a set of requested dishes, and performs the one-time
// deduction at settlement. Receiving and purchasing stay external;
// AddStock exists for seeds and admin restocking only.
type InventoryService struct {
	materialRepo repository.MaterialRepository
	recipeRepo   repository.RecipeRepository
	movementRepo repository.StockMovementRepository
	lineRepo     repository.OrderLineRepository
	emailService *email.EmailService
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	materialRepo repository.MaterialRepository,
	recipeRepo repository.RecipeRepository,
	movementRepo repository.StockMovementRepository,
	lineRepo repository.OrderLineRepository,
	emailService *email.EmailService,
) *InventoryService {
	return &InventoryService{
		materialRepo: materialRepo,
		recipeRepo:   recipeRepo,
		movementRepo: movementRepo,
		lineRepo:     lineRepo,
		emailService: emailService,
	}
}

// ComputeRequirement aggregates the material quantities needed for the
// requested items from recipe data. Read-only.
func (s *InventoryService) ComputeRequirement(ctx context.Context, items []RequestedItem) (map[uuid.UUID]float64, error) {
	requirement := make(map[uuid.UUID]float64)
	if len(items) == 0 {
		return requirement, nil
	}

	dishIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, item := range items {
		if !seen[item.DishID] {
			seen[item.DishID] = true
			dishIDs = append(dishIDs, item.DishID)
		}
	}

	recipes, err := s.recipeRepo.GetByDishIDs(ctx, dishIDs)
	if err != nil {
		return nil, err
	}

	perDish := make(map[uuid.UUID][]entity.RecipeLine)
	for _, line := range recipes {
		perDish[line.DishID] = append(perDish[line.DishID], line)
	}

	for _, item := range items {
		for _, recipe := range perDish[item.DishID] {
			requirement[recipe.MaterialID] += recipe.QtyPerUnit * float64(item.Quantity)
		}
	}

	return requirement, nil
}

// CheckSufficiency compares a requirement against on-hand stock and
// returns the shortage list; empty means sufficient
func (s *InventoryService) CheckSufficiency(ctx context.Context, requirement map[uuid.UUID]float64) ([]Shortage, error) {
	if len(requirement) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(requirement))
	for id := range requirement {
		ids = append(ids, id)
	}

	materials, err := s.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Material, len(materials))
	for _, m := range materials {
		byID[m.ID] = m
	}

	var shortages []Shortage
	for id, required := range requirement {
		material, ok := byID[id]
		if !ok {
			shortages = append(shortages, Shortage{MaterialID: id, Required: required})
			continue
		}
		if material.OnHand < required {
			shortages = append(shortages, Shortage{
				MaterialID: material.ID,
				Name:       material.Name,
				Unit:       material.Unit,
				Required:   required,
				Available:  material.OnHand,
			})
		}
	}

	sort.Slice(shortages, func(i, j int) bool {
		return shortages[i].Name < shortages[j].Name
	})

	return shortages, nil
}

// Deduct decrements on-hand stock for the order's non-voided lines and
// writes one stock movement per material. Called exactly once, at
// settlement, inside the payment transaction; order creation only
// verifies feasibility.
func (s *InventoryService) Deduct(ctx context.Context, orderID uuid.UUID) error {
	lines, err := s.lineRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	items := make([]RequestedItem, 0, len(lines))
	for _, line := range lines {
		if line.Status == enum.LineStatusVoided {
			continue
		}
		items = append(items, RequestedItem{DishID: line.DishID, Quantity: line.Quantity})
	}

	requirement, err := s.ComputeRequirement(ctx, items)
	if err != nil {
		return err
	}
	if len(requirement) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(requirement))
	for id := range requirement {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	movements := make([]entity.StockMovement, 0, len(ids))
	for _, id := range ids {
		if err := s.materialRepo.Decrement(ctx, id, requirement[id]); err != nil {
			return err
		}
		movements = append(movements, entity.StockMovement{
			OrderID:    orderID,
			MaterialID: id,
			Quantity:   requirement[id],
		})
	}

	return s.movementRepo.CreateBatch(ctx, movements)
}

// LowStockCheck emails an alert for materials at or below their
// minimum threshold. Best-effort: failures are logged, never returned.
func (s *InventoryService) LowStockCheck(ctx context.Context) {
	materials, err := s.materialRepo.ListLowStock(ctx)
	if err != nil {
		log.Printf("inventory: low stock check failed: %v", err)
		return
	}
	if len(materials) == 0 {
		return
	}

	items := make([]email.LowStockItem, 0, len(materials))
	for _, m := range materials {
		items = append(items, email.LowStockItem{
			Name:      m.Name,
			Unit:      m.Unit,
			OnHand:    m.OnHand,
			Threshold: m.MinThreshold,
		})
	}

	if err := s.emailService.SendLowStockAlert(items); err != nil {
		log.Printf("inventory: failed to send low stock alert: %v", err)
	}
}

// ListMaterials returns all materials
func (s *InventoryService) ListMaterials(ctx context.Context) ([]entity.Material, error) {
	return s.materialRepo.List(ctx)
}

// CreateMaterial registers a new material
func (s *InventoryService) CreateMaterial(ctx context.Context, material *entity.Material) error {
	return s.materialRepo.Create(ctx, material)
}

// UpdateMaterial updates a material's reference fields
func (s *InventoryService) UpdateMaterial(ctx context.Context, material *entity.Material) error {
	existing, err := s.materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Material")
	}
	return s.materialRepo.Update(ctx, material)
}

// AddStock receives qty units of a material into stock
func (s *InventoryService) AddStock(ctx context.Context, id uuid.UUID, qty float64) error {
	if qty <= 0 {
		return apperror.NewBadRequestError("Received quantity must be positive")
	}
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return apperror.NewNotFoundError("Material")
	}
	return s.materialRepo.AddStock(ctx, id, qty)
}

// ListMovements returns the consumption ledger for one order
func (s *InventoryService) ListMovements(ctx context.Context, orderID uuid.UUID) ([]entity.StockMovement, error) {
	return s.movementRepo.ListByOrder(ctx, orderID)
}
