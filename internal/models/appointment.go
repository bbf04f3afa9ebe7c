package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment is one booked slot. No two appointments may share the same
// (doctor, dateTime) pair; the appointments collection enforces this with a
// unique compound index.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	DoctorID  primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	DateTime  time.Time          `bson:"dateTime" json:"dateTime"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentView is an appointment with the counterpart's username resolved,
// for reservation listings.
type AppointmentView struct {
	Appointment
	UserName   string `json:"userName,omitempty"`
	DoctorName string `json:"doctorName,omitempty"`
}
