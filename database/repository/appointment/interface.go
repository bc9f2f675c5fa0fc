package appointmentRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"shopdesk/models"
)

// AppointmentRepository stores the shop's own copy of completed bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, appt models.Appointment) (string, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByPhone(ctx context.Context, phone string) ([]models.Appointment, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo(client *mongo.Client) AppointmentRepository {
	db := client.Database("shopdesk")
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
