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

// ChatRepository is the access layer for the chats collection. AppendMessage
// and DetachMessage keep the chat's ordered message-id list in step with the
// messages collection and touch updatedAt on append.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error)
	FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error)
	AppendMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error
	DetachMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error
}

type mongoChatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) ChatRepository {
	return &mongoChatRepository{collection: db.Collection("chats")}
}

func (r *mongoChatRepository) Create(ctx context.Context, chat *models.Chat) error {
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now
	if chat.ID.IsZero() {
		chat.ID = primitive.NewObjectID()
	}
	if chat.Messages == nil {
		chat.Messages = make([]primitive.ObjectID, 0)
	}
	_, err := r.collection.InsertOne(ctx, chat)
	return err
}

func (r *mongoChatRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Chat, error) {
	var chat models.Chat
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&chat); err != nil {
		return nil, translate(err)
	}
	return &chat, nil
}

func (r *mongoChatRepository) FindByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	chats := make([]models.Chat, 0)
	if err := cursor.All(ctx, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *mongoChatRepository) AppendMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{
			"$push": bson.M{"messages": messageID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoChatRepository) DetachMessage(ctx context.Context, chatID, messageID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": chatID},
		bson.M{"$pull": bson.M{"messages": messageID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
