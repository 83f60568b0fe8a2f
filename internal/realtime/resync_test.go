package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

func TestKitchenSnapshotSkipsFinishedLines(t *testing.T) {
	table := &entity.Table{Number: 4}
	orders := []entity.Order{
		{
			ID:    uuid.New(),
			Table: table,
			Lines: []entity.OrderLine{
				{ID: uuid.New(), Dish: entity.Dish{Name: "Soup"}, Quantity: 2, Status: enum.LineStatusAwaitingPrep},
				{ID: uuid.New(), Dish: entity.Dish{Name: "Steak"}, Quantity: 1, Status: enum.LineStatusInProgress, Note: "rare"},
				{ID: uuid.New(), Dish: entity.Dish{Name: "Bread"}, Quantity: 1, Status: enum.LineStatusServed},
				{ID: uuid.New(), Dish: entity.Dish{Name: "Cake"}, Quantity: 1, Status: enum.LineStatusVoided},
			},
		},
	}

	queue := KitchenSnapshot(orders)
	require.Len(t, queue, 2)
	assert.Equal(t, "Soup", queue[0].Dish)
	assert.Equal(t, 4, queue[0].Table)
	assert.Equal(t, "Steak", queue[1].Dish)
	assert.Equal(t, "rare", queue[1].Note)
}

func TestKitchenSnapshotEmptyIsNotNil(t *testing.T) {
	// An empty queue must serialize as [] rather than null
	assert.NotNil(t, KitchenSnapshot(nil))
	assert.NotNil(t, KitchenSnapshot([]entity.Order{}))
}

func TestTableSnapshotProjectsBoard(t *testing.T) {
	tables := []entity.Table{
		{ID: uuid.New(), Number: 1, Capacity: 2, Status: enum.TableStatusEmpty},
		{ID: uuid.New(), Number: 2, Capacity: 6, Status: enum.TableStatusOccupied},
	}

	board := TableSnapshot(tables)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Number)
	assert.Equal(t, enum.TableStatusOccupied, board[1].Status)
}
