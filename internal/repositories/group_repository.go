package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/campuslink/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupFilter narrows a group listing. Empty fields mean no filter.
type GroupFilter struct {
	Interests    []string
	SubInterests []string
}

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	ListGroups(ctx context.Context, filter GroupFilter, limit int64) ([]models.Group, error)
	IncrementMemberCount(ctx context.Context, groupID string, delta int) error
}

// MongoGroupRepository implements GroupRepository for MongoDB
type MongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates a new MongoGroupRepository
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{collection: db.Collection("groups")}
}

// CreateGroup creates a new group. The creator is its first approved member,
// so member_count starts at 1.
func (r *MongoGroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.MemberCount = 1
	group.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, group)
	return err
}

// GetGroupByID retrieves a group by ID; a missing group is (nil, nil)
func (r *MongoGroupRepository) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid group ID format: %w", err)
	}

	var group models.Group
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// ListGroups retrieves groups ordered by member count descending
func (r *MongoGroupRepository) ListGroups(ctx context.Context, filter GroupFilter, limit int64) ([]models.Group, error) {
	query := bson.M{}
	if len(filter.Interests) > 0 {
		query["interest"] = bson.M{"$in": filter.Interests}
	}
	if len(filter.SubInterests) > 0 {
		// Groups without a sub-interest still match, like untagged posts in the feed.
		query["$or"] = bson.A{
			bson.M{"sub_interest": bson.M{"$in": filter.SubInterests}},
			bson.M{"sub_interest": bson.M{"$exists": false}},
			bson.M{"sub_interest": ""},
		}
	}

	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "member_count", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// IncrementMemberCount moves the member counter of a group by delta via a
// server-side atomic increment
func (r *MongoGroupRepository) IncrementMemberCount(ctx context.Context, groupID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return fmt.Errorf("invalid group ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"member_count": delta}})
	return err
}
