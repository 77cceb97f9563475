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

// GroupMessageRepository defines the interface for group-message operations
type GroupMessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.GroupMessage) error
	GetMessagesByGroupID(ctx context.Context, groupID string) ([]models.GroupMessage, error)
	GetLastMessage(ctx context.Context, groupID string) (*models.GroupMessage, error)
}

// MongoGroupMessageRepository implements GroupMessageRepository for MongoDB
type MongoGroupMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupMessageRepository creates a new MongoGroupMessageRepository
func NewMongoGroupMessageRepository(db *mongo.Database) *MongoGroupMessageRepository {
	return &MongoGroupMessageRepository{collection: db.Collection("group_messages")}
}

// CreateMessage appends a message to a group room
func (r *MongoGroupMessageRepository) CreateMessage(ctx context.Context, msg *models.GroupMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetMessagesByGroupID retrieves a group's messages, oldest first
func (r *MongoGroupMessageRepository) GetMessagesByGroupID(ctx context.Context, groupID string) ([]models.GroupMessage, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"group_id": groupID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.GroupMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetLastMessage retrieves the most recent message in a group room, or
// (nil, nil) when the room has no messages yet
func (r *MongoGroupMessageRepository) GetLastMessage(ctx context.Context, groupID string) (*models.GroupMessage, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var msg models.GroupMessage
	err := r.collection.FindOne(ctx, bson.M{"group_id": groupID}, findOptions).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
