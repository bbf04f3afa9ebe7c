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

// PostFilter narrows and pages a post listing. Page is 1-based.
type PostFilter struct {
	Category string
	Page     int64
	Limit    int64
}

// PostRepository is the access layer for the posts collection. AddFavourite
// and RemoveFavourite touch both the post's likes and the user's favourite
// list inside one transaction so a partial failure cannot leave the two
// documents inconsistent.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	Find(ctx context.Context, filter PostFilter) ([]models.Post, error)
	GroupBySubCategory(ctx context.Context, category models.Category) (map[string][]models.Post, error)
	Save(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddFavourite(ctx context.Context, userID, postID primitive.ObjectID) error
	RemoveFavourite(ctx context.Context, userID, postID primitive.ObjectID) error
}

type mongoPostRepository struct {
	client *mongo.Client
	posts  *mongo.Collection
	users  *mongo.Collection
}

func NewPostRepository(db *mongo.Database) PostRepository {
	return &mongoPostRepository{
		client: db.Client(),
		posts:  db.Collection("posts"),
		users:  db.Collection("users"),
	}
}

func (r *mongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Likes == nil {
		post.Likes = make([]primitive.ObjectID, 0)
	}
	_, err := r.posts.InsertOne(ctx, post)
	return err
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *mongoPostRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *mongoPostRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *mongoPostRepository) Find(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	return r.find(ctx, query, opts)
}

func (r *mongoPostRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.posts.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *mongoPostRepository) GroupBySubCategory(ctx context.Context, category models.Category) (map[string][]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	posts, err := r.find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Post)
	for _, post := range posts {
		grouped[post.SubCategory] = append(grouped[post.SubCategory], post)
	}
	return grouped, nil
}

func (r *mongoPostRepository) Save(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	result, err := r.posts.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFavourite pushes the post into the user's favourite list and the user
// into the post's likes inside one transaction.
func (r *mongoPostRepository) AddFavourite(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.users.UpdateOne(sc,
			bson.M{"_id": userID},
			bson.M{"$addToSet": bson.M{"favouriteList": postID}},
		); err != nil {
			return err
		}
		_, err := r.posts.UpdateOne(sc,
			bson.M{"_id": postID},
			bson.M{"$addToSet": bson.M{"likes": userID}},
		)
		return err
	})
}

// RemoveFavourite is the inverse of AddFavourite; pulling absent ids is a
// no-op on both sides.
func (r *mongoPostRepository) RemoveFavourite(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.users.UpdateOne(sc,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"favouriteList": postID}},
		); err != nil {
			return err
		}
		_, err := r.posts.UpdateOne(sc,
			bson.M{"_id": postID},
			bson.M{"$pull": bson.M{"likes": userID}},
		)
		return err
	})
}

func (r *mongoPostRepository) withTransaction(ctx context.Context, fn func(mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
