package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/models"
)

func GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := database.ReviewCollection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews", "details": err.Error()})
		return
	}

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": reviews})
}

func CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := database.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var existing models.Review
	err = database.ReviewCollection.FindOne(ctx, bson.M{"productId": productID, "buyerId": userID}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
		return
	}

	var user models.User
	_ = database.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)

	review := models.Review{
		ID:        primitive.NewObjectID(),
		ProductID: productID,
		BuyerID:   userID,
		BuyerName: user.Name,
		Rating:    body.Rating,
		Comment:   body.Comment,
		CreatedAt: time.Now(),
	}

	if _, err := database.ReviewCollection.InsertOne(ctx, review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review", "details": err.Error()})
		return
	}

	recomputeProductRating(ctx, productID)

	c.JSON(http.StatusCreated, gin.H{"message": "Review created", "data": review})
}

func DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var review models.Review
	if err := database.ReviewCollection.FindOne(ctx, bson.M{"_id": reviewID, "buyerId": userID}).Decode(&review); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if _, err := database.ReviewCollection.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review", "details": err.Error()})
		return
	}

	recomputeProductRating(ctx, review.ProductID)

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// recomputeProductRating re-derives rating and reviewCount from the
// review collection after any change.
func recomputeProductRating(ctx context.Context, productID primitive.ObjectID) {
	cursor, err := database.ReviewCollection.Aggregate(ctx, bson.A{
		bson.M{"$match": bson.M{"productId": productID}},
		bson.M{"$group": bson.M{
			"_id":   "$productId",
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}},
	})
	if err != nil {
		log.Printf("failed to aggregate reviews for %s: %v", productID.Hex(), err)
		return
	}

	var results []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		log.Printf("failed to decode review aggregate for %s: %v", productID.Hex(), err)
		return
	}

	rating, count := 0.0, 0
	if len(results) > 0 {
		rating, count = results[0].Avg, results[0].Count
	}

	_, _ = database.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"rating": rating, "reviewCount": count}},
	)
}
