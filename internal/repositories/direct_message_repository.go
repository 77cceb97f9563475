package repositories

import (
	"context"
	"time"

	"github.com/campuslink/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DirectMessageRepository defines the interface for direct-message operations
type DirectMessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.DirectMessage) error
	GetMessagesBetween(ctx context.Context, userID, otherUserID string) ([]models.DirectMessage, error)
	GetMessagesBySender(ctx context.Context, senderID string) ([]models.DirectMessage, error)
	GetMessagesByReceiver(ctx context.Context, receiverID string) ([]models.DirectMessage, error)
	MarkMessagesAsRead(ctx context.Context, senderID, receiverID string) error
}

// MongoDirectMessageRepository implements DirectMessageRepository for MongoDB
type MongoDirectMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoDirectMessageRepository creates a new MongoDirectMessageRepository
func NewMongoDirectMessageRepository(db *mongo.Database) *MongoDirectMessageRepository {
	return &MongoDirectMessageRepository{collection: db.Collection("direct_messages")}
}

// CreateMessage appends a direct message. Messages are created unread.
func (r *MongoDirectMessageRepository) CreateMessage(ctx context.Context, msg *models.DirectMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.Read = false
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetMessagesBetween retrieves the full history between two users, oldest first
func (r *MongoDirectMessageRepository) GetMessagesBetween(ctx context.Context, userID, otherUserID string) ([]models.DirectMessage, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"sender_id": userID, "receiver_id": otherUserID},
		bson.M{"sender_id": otherUserID, "receiver_id": userID},
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.DirectMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessagesBySender retrieves all messages sent by a user, newest first
func (r *MongoDirectMessageRepository) GetMessagesBySender(ctx context.Context, senderID string) ([]models.DirectMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sender_id": senderID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.DirectMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessagesByReceiver retrieves all messages received by a user, newest first
func (r *MongoDirectMessageRepository) GetMessagesByReceiver(ctx context.Context, receiverID string) ([]models.DirectMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"receiver_id": receiverID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.DirectMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessagesAsRead flips the read flag on every unread message from
// senderID to receiverID. Called by the recipient when opening the thread.
func (r *MongoDirectMessageRepository) MarkMessagesAsRead(ctx context.Context, senderID, receiverID string) error {
	query := bson.M{"sender_id": senderID, "receiver_id": receiverID, "read": false}
	_, err := r.collection.UpdateMany(ctx, query, bson.M{"$set": bson.M{"read": true}})
	return err
}
