package realtime

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// KitchenLine is one pending line on the kitchen display
type KitchenLine struct {
	LineID   string          `json:"line_id"`
	OrderID  string          `json:"order_id"`
	Table    int             `json:"table,omitempty"`
	Dish     string          `json:"dish"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"note,omitempty"`
	Status   enum.LineStatus `json:"status"`
}

// TableState is one table on the floor board
type TableState struct {
	TableID  string           `json:"table_id"`
	Number   int              `json:"number"`
	Capacity int              `json:"capacity"`
	Status   enum.TableStatus `json:"status"`
}

// KitchenSnapshot projects dispatched orders onto the kitchen queue.
// Both the resync poller and the event-triggered path build their
// payloads through this function so viewers always see the same shape.
func KitchenSnapshot(orders []entity.Order) []KitchenLine {
	queue := make([]KitchenLine, 0)
	for _, order := range orders {
		tableNumber := 0
		if order.Table != nil {
			tableNumber = order.Table.Number
		}
		for _, line := range order.Lines {
			if line.Status == enum.LineStatusVoided || line.Status == enum.LineStatusServed {
				continue
			}
			queue = append(queue, KitchenLine{
				LineID:   line.ID.String(),
				OrderID:  order.ID.String(),
				Table:    tableNumber,
				Dish:     line.Dish.Name,
				Quantity: line.Quantity,
				Note:     line.Note,
				Status:   line.Status,
			})
		}
	}
	return queue
}

// TableSnapshot projects the floor board
func TableSnapshot(tables []entity.Table) []TableState {
	board := make([]TableState, 0, len(tables))
	for _, table := range tables {
		board = append(board, TableState{
			TableID:  table.ID.String(),
			Number:   table.Number,
			Capacity: table.Capacity,
			Status:   table.Status,
		})
	}
	return board
}

// Resyncer periodically rebroadcasts the current kitchen queue and
// table board. Event pushes can be lost; the poller is the fallback
// that keeps viewers converging on the database state.
type Resyncer struct {
	publisher Publisher
	orders    repository.OrderRepository
	tables    repository.TableRepository
	interval  time.Duration
}

// NewResyncer creates a resync poller
func NewResyncer(publisher Publisher, orders repository.OrderRepository, tables repository.TableRepository, interval time.Duration) *Resyncer {
	return &Resyncer{
		publisher: publisher,
		orders:    orders,
		tables:    tables,
		interval:  interval,
	}
}

// Run broadcasts snapshots every interval until the context is
// cancelled. Intended to be started as a goroutine from main.
func (r *Resyncer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.broadcast(ctx)
		}
	}
}

func (r *Resyncer) broadcast(ctx context.Context) {
	sent := enum.OrderStatusSent
	orders, _, err := r.orders.List(ctx, &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
		Status:     &sent,
	})
	if err != nil {
		log.Printf("realtime: resync failed to load kitchen queue: %v", err)
	} else {
		r.publisher.Publish(ctx, ChannelKitchen, NewEvent(EventKitchenSnapshot, KitchenSnapshot(orders)))
	}

	tables, err := r.tables.List(ctx)
	if err != nil {
		log.Printf("realtime: resync failed to load table board: %v", err)
		return
	}
	r.publisher.Publish(ctx, ChannelTables, NewEvent(EventTableSnapshot, TableSnapshot(tables)))
}
