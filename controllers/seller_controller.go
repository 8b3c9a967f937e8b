package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/models"
)

// verificationTransitions mirrors the order status table: sellers move
// unverified/rejected -> pending by submitting, admins decide
// pending -> verified|rejected.
var verificationTransitions = map[string][]string{
	models.SellerUnverified: {models.SellerPending},
	models.SellerPending:    {models.SellerVerified, models.SellerRejected},
	models.SellerRejected:   {models.SellerPending},
	models.SellerVerified:   {},
}

func canVerifyTransition(from, to string) bool {
	for _, next := range verificationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func GetSellerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile models.SellerProfile
	err := database.SellerCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": profile})
}

func UpdateSellerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		StoreName *string `json:"storeName"`
		Bio       *string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if body.StoreName != nil {
		set["storeName"] = *body.StoreName
	}
	if body.Bio != nil {
		set["bio"] = *body.Bio
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.SellerCollection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// SubmitVerification moves the seller's profile into the review queue.
func SubmitVerification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile models.SellerProfile
	err := database.SellerCollection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller profile not found"})
		return
	}

	if !canVerifyTransition(profile.VerificationStatus, models.SellerPending) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot submit for verification from status %s", profile.VerificationStatus),
		})
		return
	}

	now := time.Now()
	_, err = database.SellerCollection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{
			"verificationStatus": models.SellerPending,
			"submittedAt":        now,
			"updatedAt":          now,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit verification", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification submitted"})
}

func GetSellersAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["verificationStatus"] = status
	}

	cursor, err := database.SellerCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sellers", "details": err.Error()})
		return
	}

	var sellers []models.SellerProfile
	if err := cursor.All(ctx, &sellers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode sellers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": sellers})
}

// ReviewVerification is the admin verdict on a pending seller.
func ReviewVerification(c *gin.Context) {
	sellerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid seller ID"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if body.Status != models.SellerVerified && body.Status != models.SellerRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be verified or rejected"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var profile models.SellerProfile
	err = database.SellerCollection.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&profile)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Seller profile not found"})
		return
	}

	if !canVerifyTransition(profile.VerificationStatus, body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot change verification status from %s to %s", profile.VerificationStatus, body.Status),
		})
		return
	}

	now := time.Now()
	_, err = database.SellerCollection.UpdateOne(ctx,
		bson.M{"_id": sellerID},
		bson.M{"$set": bson.M{
			"verificationStatus": body.Status,
			"verificationNote":   body.Note,
			"reviewedAt":         now,
			"updatedAt":          now,
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verification", "details": err.Error()})
		return
	}

	message := "Your seller account has been verified"
	if body.Status == models.SellerRejected {
		message = "Your seller verification was rejected"
		if body.Note != "" {
			message += ": " + body.Note
		}
	}
	notify(ctx, profile.UserID, models.NotificationVerification,
		"Verification "+body.Status, message, "/seller/profile",
		bson.M{"status": body.Status},
	)

	c.JSON(http.StatusOK, gin.H{"message": "Verification " + body.Status})
}
