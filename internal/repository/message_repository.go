package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mmneaa/GradApp-Back-End-V2/internal/models"
)

// MessageRepository is the access layer for the messages collection.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error)
	FindByChat(ctx context.Context, chatID primitive.ObjectID, limit int64) ([]models.Message, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoMessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{collection: db.Collection("messages")}
}

func (r *mongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now()
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

func (r *mongoMessageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Message, error) {
	var message models.Message
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message); err != nil {
		return nil, translate(err)
	}
	return &message, nil
}

// FindByChat returns the most recent messages of the chat, newest first.
func (r *mongoMessageRepository) FindByChat(ctx context.Context, chatID primitive.ObjectID, limit int64) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"chatId": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]models.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *mongoMessageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
