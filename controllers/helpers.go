package controllers

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/models"
)

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userId, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userId.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return objID, true
}

// notify is fire and forget: a failed insert is logged, never surfaced
// to the request that triggered it.
func notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message, link string, metadata bson.M) {
	n := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Link:      link,
		IsRead:    false,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	if _, err := database.NotificationCollection.InsertOne(ctx, n); err != nil {
		log.Printf("failed to write %s notification for %s: %v", notifType, userID.Hex(), err)
	}
}
