package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
)

// GroupRepository is the access layer for the groups collection.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error)
}

type mongoGroupRepository struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) GroupRepository {
	return &mongoGroupRepository{collection: db.Collection("groups")}
}

func (r *mongoGroupRepository) Create(ctx context.Context, group *models.Group) error {
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, group)
	return err
}

func (r *mongoGroupRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var group models.Group
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&group); err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *mongoGroupRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := make([]models.Group, 0)
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
