package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jakia12/bizconnect-backend/database"
	"github.com/jakia12/bizconnect-backend/models"
)

// SendMessage appends to the pairwise conversation between sender and
// recipient, creating it on first contact. The recipient's unread count
// is bumped; clients poll GetConversations to pick it up.
func SendMessage(c *gin.Context) {
	senderID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		RecipientID string `json:"recipientId" binding:"required"`
		Body        string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipientId and body are required"})
		return
	}

	recipientID, err := primitive.ObjectIDFromHex(body.RecipientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipientId"})
		return
	}
	if recipientID == senderID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var recipient models.User
	if err := database.UserCollection.FindOne(ctx, bson.M{"_id": recipientID}).Decode(&recipient); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}

	now := time.Now()

	var conversation models.Conversation
	err = database.ConversationCollection.FindOne(ctx, bson.M{
		"participants": bson.M{"$all": []primitive.ObjectID{senderID, recipientID}},
	}).Decode(&conversation)
	if err == mongo.ErrNoDocuments {
		conversation = models.Conversation{
			ID:           primitive.NewObjectID(),
			Participants: []primitive.ObjectID{senderID, recipientID},
			UnreadCounts: map[string]int{senderID.Hex(): 0, recipientID.Hex(): 0},
			CreatedAt:    now,
		}
		if _, err := database.ConversationCollection.InsertOne(ctx, conversation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation", "details": err.Error()})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation", "details": err.Error()})
		return
	}

	message := models.Message{
		ID:             primitive.NewObjectID(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Body:           body.Body,
		CreatedAt:      now,
	}
	if _, err := database.MessageCollection.InsertOne(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message", "details": err.Error()})
		return
	}

	_, err = database.ConversationCollection.UpdateOne(ctx,
		bson.M{"_id": conversation.ID},
		bson.M{
			"$set": bson.M{"lastMessage": body.Body, "lastMessageAt": now},
			"$inc": bson.M{"unreadCounts." + recipientID.Hex(): 1},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update conversation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "data": message})
}

func GetConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"lastMessageAt": -1})
	cursor, err := database.ConversationCollection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations", "details": err.Error()})
		return
	}

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode conversations", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": conversations})
}

// GetConversationMessages returns the thread and zeroes the reader's
// unread count.
func GetConversationMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conversationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var conversation models.Conversation
	err = database.ConversationCollection.FindOne(ctx, bson.M{"_id": conversationID, "participants": userID}).Decode(&conversation)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := database.MessageCollection.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages", "details": err.Error()})
		return
	}

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages", "details": err.Error()})
		return
	}

	_, _ = database.ConversationCollection.UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{"$set": bson.M{"unreadCounts." + userID.Hex(): 0}},
	)

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": messages})
}
