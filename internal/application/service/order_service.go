package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// OrderItemInput is one requested dish on an order
type OrderItemInput struct {
	DishID    uuid.UUID
	Quantity  int
	Note      string
	OptionIDs []uuid.UUID
}

// CreateOrderInput carries everything needed to open or extend a tab
type CreateOrderInput struct {
	TableID       uuid.UUID
	Items         []OrderItemInput
	Note          string
	Discount      int64
	ApproverPIN   string
	ReservationID *uuid.UUID
	CreatedBy     uuid.UUID
}

// UpdateOrderInput carries line additions and removals for an order
type UpdateOrderInput struct {
	AddItems      []OrderItemInput
	RemoveLineIDs []uuid.UUID
	Note          *string
}

// OrderService owns order and line creation, mutation and status
// transitions. Stock feasibility is checked before any lines commit;
// the actual deduction happens later, at settlement.
type OrderService struct {
	txManager       repository.TxManager
	orderRepo       repository.OrderRepository
	lineRepo        repository.OrderLineRepository
	dishRepo        repository.DishRepository
	tableRepo       repository.TableRepository
	reservationRepo repository.ReservationRepository
	inventory       *InventoryService
	invoices        *InvoiceService
	approval        *ApprovalService
	publisher       realtime.Publisher
	pos             config.POSConfig
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	dishRepo repository.DishRepository,
	tableRepo repository.TableRepository,
	reservationRepo repository.ReservationRepository,
	inventory *InventoryService,
	invoices *InvoiceService,
	approval *ApprovalService,
	publisher realtime.Publisher,
	pos config.POSConfig,
) *OrderService {
	return &OrderService{
		txManager:       txManager,
		orderRepo:       orderRepo,
		lineRepo:        lineRepo,
		dishRepo:        dishRepo,
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		inventory:       inventory,
		invoices:        invoices,
		approval:        approval,
		publisher:       publisher,
		pos:             pos,
	}
}

// Create opens a new tab on the table, or appends the requested items
// to the table's existing open tab. The whole operation commits in one
// transaction: lines, table occupancy, order dispatch and invoice.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}

	var orderID uuid.UUID

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		table, err := s.tableRepo.GetByIDForUpdate(ctx, input.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return apperror.NewNotFoundError("Table")
		}

		existing, err := s.orderRepo.GetActiveByTable(ctx, table.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			// Open tab: append to the running order instead of
			// creating a second one on the same table.
			orderID = existing.ID
			if err := s.appendLines(ctx, existing, input.Items); err != nil {
				return err
			}
			return s.invoices.SyncWithOrder(ctx, existing.ID)
		}

		if !table.Status.Orderable() {
			return apperror.NewInvalidStateError(
				fmt.Sprintf("Table %d is %s and cannot take orders", table.Number, table.Status))
		}
		if err := s.checkReservation(ctx, table.ID, input.ReservationID); err != nil {
			return err
		}
		if err := s.checkStock(ctx, input.Items); err != nil {
			return err
		}

		order := &entity.Order{
			TableID:   &table.ID,
			CreatedBy: input.CreatedBy,
			Note:      input.Note,
			Status:    enum.OrderStatusSent,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID

		lines, err := s.buildLines(ctx, order.ID, input.Items)
		if err != nil {
			return err
		}
		if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
			return err
		}

		if err := s.tableRepo.UpdateStatus(ctx, table.ID, enum.TableStatusOccupied); err != nil {
			return err
		}

		_, err = s.invoices.CreateFromOrder(ctx, order.ID, input.Discount, input.ApproverPIN, input.CreatedBy)
		return err
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventOrderCreated, realtime.KitchenSnapshot([]entity.Order{*order})))
	s.publisher.Publish(ctx, realtime.ChannelTables,
		realtime.NewEvent(realtime.EventTableChanged, map[string]interface{}{"table_id": input.TableID}))

	return order, nil
}

// Update applies line additions and removals. Removals are only
// allowed while the line is still AWAITING_PREP; additions go through
// the same stock check as creation. The invoice resyncs afterwards.
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, input UpdateOrderInput) (*entity.Order, error) {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetWithLines(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status.IsTerminal() {
			return apperror.NewInvalidStateError("Order is already " + order.Status.String())
		}

		if len(input.RemoveLineIDs) > 0 {
			byID := make(map[uuid.UUID]entity.OrderLine, len(order.Lines))
			for _, line := range order.Lines {
				byID[line.ID] = line
			}
			for _, id := range input.RemoveLineIDs {
				line, ok := byID[id]
				if !ok {
					return apperror.NewNotFoundError("Order line")
				}
				if line.Status != enum.LineStatusAwaitingPrep {
					return apperror.NewInvalidStateError(
						"Line cannot be removed once preparation has started")
				}
			}
			if err := s.lineRepo.DeleteBatch(ctx, input.RemoveLineIDs); err != nil {
				return err
			}
		}

		if len(input.AddItems) > 0 {
			if err := s.checkStock(ctx, input.AddItems); err != nil {
				return err
			}
			lines, err := s.buildLines(ctx, order.ID, input.AddItems)
			if err != nil {
				return err
			}
			if err := s.lineRepo.CreateBatch(ctx, lines); err != nil {
				return err
			}
		}

		if input.Note != nil {
			order.Note = *input.Note
			if err := s.orderRepo.Update(ctx, order); err != nil {
				return err
			}
		}

		return s.invoices.SyncWithOrder(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetWithLines(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventOrderUpdated, realtime.KitchenSnapshot([]entity.Order{*order})))

	return order, nil
}

// VoidItem voids a single line under step-up authorization. Only lines
// still in AWAITING_PREP or IN_PROGRESS can be voided.
func (s *OrderService) VoidItem(ctx context.Context, orderID, lineID uuid.UUID, reason, managerPIN string, requestedBy uuid.UUID) error {
	approver, err := s.approval.VerifyPIN(ctx, managerPIN, PermissionVoidItems, "")
	if err != nil {
		return err
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		line, err := s.lineRepo.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.OrderID != orderID {
			return apperror.NewNotFoundError("Order line")
		}
		if !line.Status.Voidable() {
			return apperror.NewInvalidStateError(
				"Line in status " + line.Status.String() + " cannot be voided")
		}

		if err := s.lineRepo.UpdateStatus(ctx, lineID, enum.LineStatusVoided); err != nil {
			return err
		}
		if err := s.approval.RecordApproval(ctx, entity.AuditActionVoidItem, requestedBy, approver, &lineID, reason); err != nil {
			return err
		}
		return s.invoices.SyncWithOrder(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventLineVoided, map[string]interface{}{
			"order_id": orderID,
			"line_id":  lineID,
		}))
	return nil
}

// UpdateLineStatus advances a line through the kitchen flow:
// AWAITING_PREP, IN_PROGRESS, DONE, SERVED, one step at a time
func (s *OrderService) UpdateLineStatus(ctx context.Context, orderID, lineID uuid.UUID, next enum.LineStatus) error {
	line, err := s.lineRepo.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil || line.OrderID != orderID {
		return apperror.NewNotFoundError("Order line")
	}
	if line.Status == enum.LineStatusVoided {
		return apperror.NewInvalidStateError("Voided lines cannot change status")
	}
	if next != line.Status+1 || next > enum.LineStatusServed {
		return apperror.NewInvalidStateError(
			"Cannot move line from " + line.Status.String() + " to " + next.String())
	}

	if err := s.lineRepo.UpdateStatus(ctx, lineID, next); err != nil {
		return err
	}

	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventLineStatusChanged, map[string]interface{}{
			"order_id": orderID,
			"line_id":  lineID,
			"status":   next.String(),
		}))
	return nil
}

// Cancel cancels an unpaid order and frees its table
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) error {
	var tableID *uuid.UUID

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status.IsTerminal() {
			return apperror.NewInvalidStateError("Order is already " + order.Status.String())
		}

		if err := s.invoices.RemoveForOrder(ctx, orderID); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
			return err
		}

		tableID = order.TableID
		if tableID != nil {
			return s.tableRepo.UpdateStatus(ctx, *tableID, enum.TableStatusEmpty)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventOrderCancelled, map[string]interface{}{"order_id": orderID}))
	if tableID != nil {
		s.publisher.Publish(ctx, realtime.ChannelTables,
			realtime.NewEvent(realtime.EventTableChanged, map[string]interface{}{"table_id": *tableID}))
	}
	return nil
}

// Get returns one order with its lines and invoice
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// List returns orders matching the filter
func (s *OrderService) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return orders, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// checkReservation rejects when the table has a reservation inside the
// configured window around now that the caller is not honoring. The
// conflicting reservation rides along in the error detail.
func (s *OrderService) checkReservation(ctx context.Context, tableID uuid.UUID, honoring *uuid.UUID) error {
	now := time.Now()
	conflicts, err := s.reservationRepo.FindConflicting(ctx, tableID,
		now.Add(-s.pos.ReservationWindow), now.Add(s.pos.ReservationWindow))
	if err != nil {
		return err
	}
	for _, reservation := range conflicts {
		if honoring != nil && *honoring == reservation.ID {
			continue
		}
		return apperror.NewConflictError("Table is reserved", reservation)
	}
	return nil
}

// checkStock fails with the structured shortage list when any required
// material is short. No partial commits: the caller's transaction
// rolls back entirely.
func (s *OrderService) checkStock(ctx context.Context, items []OrderItemInput) error {
	requested := make([]RequestedItem, 0, len(items))
	for _, item := range items {
		requested = append(requested, RequestedItem{DishID: item.DishID, Quantity: item.Quantity})
	}

	requirement, err := s.inventory.ComputeRequirement(ctx, requested)
	if err != nil {
		return err
	}
	shortages, err := s.inventory.CheckSufficiency(ctx, requirement)
	if err != nil {
		return err
	}
	if len(shortages) > 0 {
		return apperror.NewInsufficientError("Insufficient stock", shortages)
	}
	return nil
}

// buildLines prices the requested items: unit price = dish base price
// plus the surcharges of the chosen options, captured now and never
// recomputed
func (s *OrderService) buildLines(ctx context.Context, orderID uuid.UUID, items []OrderItemInput) ([]entity.OrderLine, error) {
	dishIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		dishIDs = append(dishIDs, item.DishID)
	}
	dishes, err := s.dishRepo.GetByIDs(ctx, dishIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Dish, len(dishes))
	for _, dish := range dishes {
		byID[dish.ID] = dish
	}

	lines := make([]entity.OrderLine, 0, len(items))
	for _, item := range items {
		dish, ok := byID[item.DishID]
		if !ok {
			return nil, apperror.NewNotFoundError("Dish")
		}
		if !dish.Available {
			return nil, apperror.NewInvalidStateError("Dish " + dish.Name + " is not available")
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "must be greater than zero"},
			})
		}

		options := make(map[uuid.UUID]entity.DishOption, len(dish.Options))
		for _, option := range dish.Options {
			options[option.ID] = option
		}

		unitPrice := dish.BasePrice
		selected := make([]entity.OrderLineOption, 0, len(item.OptionIDs))
		for _, optionID := range item.OptionIDs {
			option, ok := options[optionID]
			if !ok {
				return nil, apperror.NewNotFoundError("Dish option")
			}
			unitPrice += option.Surcharge
			selected = append(selected, entity.OrderLineOption{
				DishOptionID: option.ID,
				Surcharge:    option.Surcharge,
			})
		}

		lines = append(lines, entity.OrderLine{
			OrderID:   orderID,
			DishID:    dish.ID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Status:    enum.LineStatusAwaitingPrep,
			Note:      item.Note,
			Options:   selected,
		})
	}
	return lines, nil
}

// appendLines extends an existing open tab with additional items
func (s *OrderService) appendLines(ctx context.Context, order *entity.Order, items []OrderItemInput) error {
	if order.Status == enum.OrderStatusOpen {
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, enum.OrderStatusSent); err != nil {
			return err
		}
	}
	if err := s.checkStock(ctx, items); err != nil {
		return err
	}
	lines, err := s.buildLines(ctx, order.ID, items)
	if err != nil {
		return err
	}
	return s.lineRepo.CreateBatch(ctx, lines)
}
