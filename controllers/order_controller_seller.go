package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/events"
	"github.com/jakia12/bizconnect-backend/middleware"
	"github.com/jakia12/bizconnect-backend/models"
)

func GetSellerOrders(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"sellerId": sellerID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders", "details": err.Error()})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

func GetSellerOrderByID(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "sellerId": sellerID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": order})
}

// sellerOrderUpdateFilter pins the owning seller and the status the
// transition was validated against, so a concurrent status change makes
// this write miss instead of applying twice.
func sellerOrderUpdateFilter(orderID, sellerID primitive.ObjectID, currentStatus string) bson.M {
	return bson.M{"_id": orderID, "sellerId": sellerID, "status": currentStatus}
}

// UpdateSellerOrder moves an order through its status lifecycle and/or
// sets the fulfilment fields. A status change notifies the buyer once;
// tracking number, estimated delivery and notes persist with or without
// a status change and never notify on their own.
func UpdateSellerOrder(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		Status            string     `json:"status"`
		TrackingNumber    string     `json:"trackingNumber"`
		EstimatedDelivery *time.Time `json:"estimatedDelivery"`
		Notes             string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "sellerId": sellerID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	now := time.Now()
	set := bson.M{"updatedAt": now}
	if body.TrackingNumber != "" {
		set["trackingNumber"] = body.TrackingNumber
	}
	if body.EstimatedDelivery != nil {
		set["estimatedDelivery"] = body.EstimatedDelivery
	}
	if body.Notes != "" {
		set["notes"] = body.Notes
	}

	if body.Status != "" {
		if !canTransition(order.Status, body.Status) {
			middleware.RecordOrderOperation("status_update", false)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cannot change status from %s to %s", order.Status, body.Status),
			})
			return
		}
		set["status"] = body.Status
		if body.Status == models.OrderDelivered {
			set["deliveredAt"] = now
		}
		if body.Status == models.OrderCancelled {
			set["cancellationReason"] = "Cancelled by seller"
			set["cancelledAt"] = now
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Order
	err = database.OrderCollection.FindOneAndUpdate(ctx,
		sellerOrderUpdateFilter(orderID, sellerID, order.Status),
		bson.M{"$set": set}, opts,
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		// Status moved between our read and this write; the transition
		// was validated against a stale state, so nothing is applied.
		middleware.RecordOrderOperation("status_update", false)
		c.JSON(http.StatusConflict, gin.H{"error": "Order was updated concurrently, please retry"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order", "details": err.Error()})
		return
	}

	if body.Status != "" {
		if body.Status == models.OrderCancelled {
			// Seller-side cancellation releases the stock too.
			rollbackStock(ctx, order.Items)
		}

		notify(ctx, order.BuyerID, models.NotificationOrderStatus,
			"Order "+body.Status,
			statusMessage(order.OrderID, body.Status),
			"/buyer/orders/"+order.ID.Hex(),
			bson.M{"orderId": order.OrderID, "status": body.Status},
		)

		if err := publisher.Publish(ctx, events.RoutingOrderStatus, events.OrderEvent{
			OrderID:   order.OrderID,
			BuyerID:   order.BuyerID.Hex(),
			SellerID:  order.SellerID.Hex(),
			Status:    body.Status,
			CreatedAt: now.Format(time.RFC3339),
		}); err != nil {
			log.Println("failed to publish order event:", err)
		}

		middleware.RecordOrderOperation("status_update", true)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "data": updated})
}

func GetOrdersAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders", "details": err.Error()})
		return
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

func GetOrderByIDAdmin(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": order})
}
