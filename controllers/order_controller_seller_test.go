package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jakia12/bizconnect-backend/models"
)

func TestSellerOrderUpdateFilterPinsOwnerAndStatus(t *testing.T) {
	orderID := primitive.NewObjectID()
	sellerID := primitive.NewObjectID()

	filter := sellerOrderUpdateFilter(orderID, sellerID, models.OrderConfirmed)

	// All three fields must be in the filter: _id alone would let two
	// concurrent cancellations both apply and double-restore stock.
	assert.Equal(t, orderID, filter["_id"])
	assert.Equal(t, sellerID, filter["sellerId"])
	assert.Equal(t, models.OrderConfirmed, filter["status"])
	assert.Len(t, filter, 3)
}
