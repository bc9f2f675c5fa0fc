package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"shopdesk/models"
)

// Create inserts a new appointment record and returns its ID.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt models.Appointment) (string, error) {
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		return "", err
	}
	return appt.ID, nil
}

// GetByID returns an appointment record by its ID.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// GetByPhone fetches all appointments booked under a phone number.
func (r *mongoAppointmentRepo) GetByPhone(ctx context.Context, phone string) ([]models.Appointment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"customerPhone": phone})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// DeleteByID removes an appointment record by ID.
func (r *mongoAppointmentRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("appointment not found")
	}
	return nil
}
