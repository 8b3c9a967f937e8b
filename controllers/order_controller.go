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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/events"
	"github.com/jakia12/bizconnect-backend/middleware"
	"github.com/jakia12/bizconnect-backend/models"
)

var publisher *events.Publisher

// SetPublisher wires the optional AMQP order-event stream. A nil
// publisher is fine; Publish on nil is a no-op.
func SetPublisher(p *events.Publisher) {
	publisher = p
}

type checkoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// Checkout validates every requested item against a fresh catalog read,
// then decrements stock per item with a conditional update, rolling all
// decrements back if any write fails. Prices always come from the
// catalog here, never from the cart or the client.
func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Items           []checkoutItem `json:"items" binding:"required,min=1,dive"`
		ShippingAddress models.Address `json:"shippingAddress" binding:"required"`
		PaymentMethod   string         `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	productIDs := make([]primitive.ObjectID, 0, len(body.Items))
	seen := make(map[primitive.ObjectID]bool)
	for _, item := range body.Items {
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
			return
		}
		if seen[oid] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duplicate product in order"})
			return
		}
		seen[oid] = true
		productIDs = append(productIDs, oid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Validate the whole order before touching any stock. A single bad
	// item rejects everything; there are no partial orders.
	products := make([]models.Product, 0, len(body.Items))
	for i, item := range body.Items {
		var product models.Product
		err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productIDs[i]}).Decode(&product)
		if err != nil {
			middleware.RecordOrderOperation("checkout", false)
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Product %s not found", item.ProductID)})
			return
		}
		if product.Status != models.ProductActive {
			middleware.RecordOrderOperation("checkout", false)
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s is not available for purchase", product.Title)})
			return
		}
		if item.Quantity > product.Stock {
			middleware.RecordOrderOperation("checkout", false)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Not enough stock for %s, available: %d", product.Title, product.Stock),
			})
			return
		}
		if product.SellerID.IsZero() {
			middleware.RecordOrderOperation("checkout", false)
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s has no seller assigned", product.Title)})
			return
		}
		products = append(products, product)
	}

	// orderItems doubles as the compensation list: it only ever holds
	// snapshots whose stock decrement committed.
	var orderItems []models.OrderItem
	var subtotal float64

	for i, item := range body.Items {
		product := products[i]

		result, err := database.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": product.ID, "stock": bson.M{"$gte": item.Quantity}},
			bson.M{"$inc": bson.M{"stock": -item.Quantity, "salesCount": item.Quantity}},
		)
		if err != nil || result.ModifiedCount == 0 {
			// Lost a race or the write failed: compensate everything
			// already taken and reject the order.
			rollbackStock(ctx, orderItems)
			middleware.RecordOrderOperation("checkout", false)
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Not enough stock for %s", product.Title),
			})
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		subtotal += product.Price * float64(item.Quantity)
	}

	tax, totalAmount := computeTotals(subtotal)
	if !finiteAmount(totalAmount) {
		rollbackStock(ctx, orderItems)
		middleware.RecordOrderOperation("checkout", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order total is not a valid amount"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:      primitive.NewObjectID(),
		OrderID: generateOrderID(),
		BuyerID: userID,
		// Single seller per order: the first item's product decides.
		// Mixed-seller item lists are a known upstream limitation.
		SellerID:        products[0].SellerID,
		Items:           orderItems,
		Subtotal:        subtotal,
		ShippingCost:    ShippingCost,
		Tax:             tax,
		TotalAmount:     totalAmount,
		Status:          models.OrderPending,
		PaymentStatus:   "pending",
		PaymentMethod:   body.PaymentMethod,
		ShippingAddress: body.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := database.OrderCollection.InsertOne(ctx, order); err != nil {
		rollbackStock(ctx, orderItems)
		middleware.RecordOrderOperation("checkout", false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "details": err.Error()})
		return
	}

	// Purchased lines leave the cart; anything else in it stays.
	_, _ = database.CartCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"productId": bson.M{"$in": productIDs}}}},
	)

	notify(ctx, order.SellerID, models.NotificationNewOrder,
		"New order received",
		fmt.Sprintf("You have a new order %s for %d item(s)", order.OrderID, len(order.Items)),
		"/seller/orders/"+order.ID.Hex(),
		bson.M{"orderId": order.OrderID, "totalAmount": order.TotalAmount},
	)

	if err := publisher.Publish(ctx, events.RoutingOrderPlaced, events.OrderEvent{
		OrderID:     order.OrderID,
		BuyerID:     order.BuyerID.Hex(),
		SellerID:    order.SellerID.Hex(),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   now.Format(time.RFC3339),
	}); err != nil {
		// Event stream is best effort; the order is already committed.
		log.Println("failed to publish order event:", err)
	}

	middleware.RecordOrderOperation("checkout", true)
	c.JSON(http.StatusCreated, gin.H{
		"orderId":     order.OrderID,
		"totalAmount": order.TotalAmount,
		"_id":         order.ID.Hex(),
	})
}

func rollbackStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		_, _ = database.ProductCollection.UpdateOne(ctx,
			bson.M{"_id": item.ProductID},
			bson.M{"$inc": bson.M{"stock": item.Quantity, "salesCount": -item.Quantity}},
		)
	}
}

func GetOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.OrderCollection.Find(ctx, bson.M{"buyerId": userID}, opts)
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

func GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
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
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "buyerId": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": order})
}

// CancelOrder lets the buyer back out while the order is still pending.
// Stock taken at checkout is returned.
func CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
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
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	if body.Reason == "" {
		body.Reason = "Cancelled by buyer"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = database.OrderCollection.FindOne(ctx, bson.M{"_id": orderID, "buyerId": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.OrderPending {
		middleware.RecordOrderOperation("cancel", false)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Only pending orders can be cancelled, current status: %s", order.Status),
		})
		return
	}

	now := time.Now()
	result, err := database.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": orderID, "buyerId": userID, "status": models.OrderPending},
		bson.M{"$set": bson.M{
			"status":             models.OrderCancelled,
			"cancellationReason": body.Reason,
			"cancelledAt":        now,
			"updatedAt":          now,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order", "details": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		middleware.RecordOrderOperation("cancel", false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled"})
		return
	}

	// Return the stock the order was holding.
	rollbackStock(ctx, order.Items)

	notify(ctx, order.BuyerID, models.NotificationOrderStatus,
		"Order cancelled",
		statusMessage(order.OrderID, models.OrderCancelled),
		"/buyer/orders/"+order.ID.Hex(),
		bson.M{"orderId": order.OrderID, "status": models.OrderCancelled},
	)
	notify(ctx, order.SellerID, models.NotificationCancellation,
		"Order cancelled by buyer",
		fmt.Sprintf("Order %s was cancelled: %s", order.OrderID, body.Reason),
		"/seller/orders/"+order.ID.Hex(),
		bson.M{"orderId": order.OrderID, "reason": body.Reason},
	)

	if err := publisher.Publish(ctx, events.RoutingOrderCancelled, events.OrderEvent{
		OrderID:   order.OrderID,
		BuyerID:   order.BuyerID.Hex(),
		SellerID:  order.SellerID.Hex(),
		Status:    models.OrderCancelled,
		Reason:    body.Reason,
		CreatedAt: now.Format(time.RFC3339),
	}); err != nil {
		log.Println("failed to publish order event:", err)
	}

	middleware.RecordOrderOperation("cancel", true)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
