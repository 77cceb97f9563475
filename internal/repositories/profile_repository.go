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

// ProfileFilter narrows a profile listing. An empty field means no filter.
type ProfileFilter struct {
	SkillLevel    string
	Interest      string   // profiles whose interests contain this value
	AnyInterests  []string // profiles sharing at least one of these interests
	ExcludeUserID string
	CompletedOnly bool
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, set bson.M) error
	ListProfiles(ctx context.Context, filter ProfileFilter, limit int64) ([]models.Profile, error)
}

// MongoProfileRepository implements ProfileRepository for MongoDB
type MongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new MongoProfileRepository
func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{collection: db.Collection("profiles")}
}

// CreateProfile creates a new profile in MongoDB
func (r *MongoProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	profile.ID = primitive.NewObjectID()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, profile)
	return err
}

// GetProfileByUserID retrieves the profile owned by userID. A missing
// profile is (nil, nil): callers check for nil before dereferencing.
func (r *MongoProfileRepository) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update to a profile document
func (r *MongoProfileRepository) UpdateProfile(ctx context.Context, id string, set bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid profile ID format: %w", err)
	}

	set["updated_at"] = time.Now()
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// ListProfiles retrieves profiles ordered by creation time descending
func (r *MongoProfileRepository) ListProfiles(ctx context.Context, filter ProfileFilter, limit int64) ([]models.Profile, error) {
	query := bson.M{}
	if filter.SkillLevel != "" {
		query["skill_level"] = filter.SkillLevel
	}
	if filter.Interest != "" {
		query["interests"] = filter.Interest
	}
	if len(filter.AnyInterests) > 0 {
		query["interests"] = bson.M{"$in": filter.AnyInterests}
	}
	if filter.ExcludeUserID != "" {
		query["user_id"] = bson.M{"$ne": filter.ExcludeUserID}
	}
	if filter.CompletedOnly {
		query["profile_completed"] = true
	}

	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []models.Profile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
