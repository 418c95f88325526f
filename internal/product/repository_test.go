package product

import (
	"context"
	"testing"

	"github.com/sbilus/storefront-backend/internal/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryAdjustStock_SoldOutSizeRefusedByGate(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seedRows())
	products := NewService(repo, TransformOptions{DefaultSizeQuantity: 5})
	stocks := stock.NewService(repo)

	require.NoError(t, stocks.Adjust(ctx, stock.Movement{ProductID: "1", Size: "P", Quantity: 2, Type: stock.MovementOut}))

	d, err := products.CheckAvailability(ctx, "1", "P", 1)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, stock.ReasonOutOfStock, d.Reason)

	p, err := products.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, p.Sizes)
	assert.Equal(t, stock.StateOutOfStock, p.Availability.State)

	moves := stocks.Movements(ctx, "1", 0)
	require.Len(t, moves, 1)
	assert.Equal(t, 2, moves[0].PreviousStock)
	assert.Equal(t, 0, moves[0].NewStock)
}

func TestInMemoryAdjustStock_LabelListKeepsOtherSizes(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seedRows())
	repo.SetDefaultSizeQuantity(3)
	products := NewService(repo, TransformOptions{DefaultSizeQuantity: 3})
	stocks := stock.NewService(repo)

	require.NoError(t, stocks.Adjust(ctx, stock.Movement{ProductID: "2", Size: "M", Quantity: 1, Type: stock.MovementOut}))

	p, err := products.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []stock.SizeStock{{Size: "P", Quantity: 3}, {Size: "M", Quantity: 2}}, p.Sizes)

	d, err := products.CheckAvailability(ctx, "2", "M", 9)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.MaxQuantity)
}

func TestInMemoryAdjustStock_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seedRows())
	before, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)

	ok, err := repo.AdjustStock(ctx, stock.Movement{ProductID: "1", Size: "P", Quantity: 3, Type: stock.MovementOut})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AdjustStock(ctx, stock.Movement{ProductID: "404", Size: "P", Quantity: 1, Type: stock.MovementIn})
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, string(before.Stock), string(after.Stock))
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	moves, err := repo.ListMovements(ctx, "1", 0)
	require.NoError(t, err)
	assert.Empty(t, moves)
}
