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

// AppointmentRepository is the access layer for the appointments collection.
// Create surfaces the unique-index violation on (doctorId, dateTime) as a
// duplicate error; call IsDuplicate on it.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error)
}

type mongoAppointmentRepository struct {
	collection *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepository{collection: db.Collection("appointments")}
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	if appointment.ID.IsZero() {
		appointment.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, appointment)
	return err
}

func (r *mongoAppointmentRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoAppointmentRepository) FindByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *mongoAppointmentRepository) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
