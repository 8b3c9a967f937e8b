package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID            string             `bson:"orderId" json:"orderId"`
	BuyerID            primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	SellerID           primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	Items              []OrderItem        `bson:"items" json:"items"`
	Subtotal           float64            `bson:"subtotal" json:"subtotal"`
	ShippingCost       float64            `bson:"shippingCost" json:"shippingCost"`
	Tax                float64            `bson:"tax" json:"tax"`
	TotalAmount        float64            `bson:"totalAmount" json:"totalAmount"`
	Status             string             `bson:"status" json:"status"`
	PaymentStatus      string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod      string             `bson:"paymentMethod" json:"paymentMethod"`
	ShippingAddress    Address            `bson:"shippingAddress" json:"shippingAddress"`
	TrackingNumber     string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	EstimatedDelivery  *time.Time         `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason string             `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	DeliveredAt        *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItem snapshots the product at order time so later catalog edits
// do not rewrite order history.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Title     string             `bson:"title" json:"title"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Address struct {
	FullName   string `bson:"fullName" json:"fullName" binding:"required"`
	Street     string `bson:"street" json:"street" binding:"required"`
	City       string `bson:"city" json:"city" binding:"required"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode" binding:"required"`
	Country    string `bson:"country" json:"country" binding:"required"`
	Phone      string `bson:"phone" json:"phone"`
}
