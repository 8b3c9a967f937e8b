package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SellerUnverified = "unverified"
	SellerPending    = "pending"
	SellerVerified   = "verified"
	SellerRejected   = "rejected"
)

type SellerProfile struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	StoreName          string             `bson:"storeName" json:"storeName"`
	Bio                string             `bson:"bio" json:"bio"`
	VerificationStatus string             `bson:"verificationStatus" json:"verificationStatus"`
	VerificationNote   string             `bson:"verificationNote,omitempty" json:"verificationNote,omitempty"`
	SubmittedAt        *time.Time         `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	ReviewedAt         *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
