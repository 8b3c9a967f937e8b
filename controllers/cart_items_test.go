package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jakia12/bizconnect-backend/models"
)

func TestMergeCartItemAppendsNewLine(t *testing.T) {
	productID := primitive.NewObjectID()

	items, err := mergeCartItem(nil, productID, 2, 100, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 100.0, items[0].Price)
}

func TestMergeCartItemGrowsExistingLine(t *testing.T) {
	productID := primitive.NewObjectID()

	items, err := mergeCartItem(nil, productID, 2, 100, 10)
	require.NoError(t, err)

	// Same product added again merges in place, never a second row.
	items, err = mergeCartItem(items, productID, 3, 100, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestMergeCartItemKeepsCapturedPrice(t *testing.T) {
	productID := primitive.NewObjectID()

	items, err := mergeCartItem(nil, productID, 1, 100, 10)
	require.NoError(t, err)

	// A later add at a different catalog price keeps the original
	// captured price on the merged line.
	items, err = mergeCartItem(items, productID, 1, 120, 10)
	require.NoError(t, err)
	assert.Equal(t, 100.0, items[0].Price)
}

func TestMergeCartItemRejectsOverStock(t *testing.T) {
	productID := primitive.NewObjectID()

	_, err := mergeCartItem(nil, productID, 11, 100, 10)
	assert.ErrorIs(t, err, errExceedsStock)

	items, err := mergeCartItem(nil, productID, 6, 100, 10)
	require.NoError(t, err)

	_, err = mergeCartItem(items, productID, 5, 100, 10)
	assert.ErrorIs(t, err, errExceedsStock)
}

func TestMergeCartItemLeavesOtherLinesAlone(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	items, err := mergeCartItem(nil, first, 1, 50, 5)
	require.NoError(t, err)
	items, err = mergeCartItem(items, second, 2, 75, 5)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestRemoveCartItemDropsOnlyTheTargetLine(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	items := []models.CartItem{
		{ProductID: first, Quantity: 1, Price: 50},
		{ProductID: second, Quantity: 2, Price: 75},
	}

	remaining, found := removeCartItem(items, first)
	assert.True(t, found)
	require.Len(t, remaining, 1)
	assert.Equal(t, second, remaining[0].ProductID)
	assert.Equal(t, 2, remaining[0].Quantity)
}

func TestRemoveCartItemMissingProductIsNotFound(t *testing.T) {
	present := primitive.NewObjectID()
	absent := primitive.NewObjectID()

	items := []models.CartItem{
		{ProductID: present, Quantity: 3, Price: 20},
	}

	// Removing a product the cart never held reports not found and
	// leaves the existing lines exactly as they were.
	remaining, found := removeCartItem(items, absent)
	assert.False(t, found)
	require.Len(t, remaining, 1)
	assert.Equal(t, present, remaining[0].ProductID)
	assert.Equal(t, 3, remaining[0].Quantity)

	remaining, found = removeCartItem(nil, absent)
	assert.False(t, found)
	assert.Empty(t, remaining)
}

func TestReconcileCartFiltersInvalidLines(t *testing.T) {
	active := primitive.NewObjectID()
	inactive := primitive.NewObjectID()
	missing := primitive.NewObjectID()

	items := []models.CartItem{
		{ProductID: active, Quantity: 2, Price: 100},
		{ProductID: inactive, Quantity: 1, Price: 40},
		{ProductID: missing, Quantity: 3, Price: 10},
	}
	products := map[primitive.ObjectID]models.Product{
		active:   {ID: active, Status: models.ProductActive, Stock: 5},
		inactive: {ID: inactive, Status: models.ProductInactive, Stock: 5},
	}

	valid, total, itemCount := reconcileCart(items, products)

	require.Len(t, valid, 1)
	assert.Equal(t, active, valid[0].ProductID)
	assert.Equal(t, 200.0, total)
	assert.Equal(t, 2, itemCount)
}

func TestReconcileCartEmpty(t *testing.T) {
	valid, total, itemCount := reconcileCart(nil, nil)
	assert.Empty(t, valid)
	assert.Zero(t, total)
	assert.Zero(t, itemCount)
}

func TestReconcileCartAllValid(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	items := []models.CartItem{
		{ProductID: a, Quantity: 1, Price: 100},
		{ProductID: b, Quantity: 2, Price: 25},
	}
	products := map[primitive.ObjectID]models.Product{
		a: {ID: a, Status: models.ProductActive},
		b: {ID: b, Status: models.ProductActive},
	}

	valid, total, itemCount := reconcileCart(items, products)
	assert.Len(t, valid, 2)
	assert.Equal(t, 150.0, total)
	assert.Equal(t, 3, itemCount)
}
