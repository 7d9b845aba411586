package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goldenview/realty/internal/db"
	"goldenview/realty/internal/models"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// IAppointmentService defines the interface for viewing appointment operations.
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
	ListAppointments(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus, agentNotes string) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id primitive.ObjectID) error
}

// appointmentService implements IAppointmentService.
type appointmentService struct {
	db *mongo.Database
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(database *mongo.Database) IAppointmentService {
	return &appointmentService{db: database}
}

// CreateAppointment books a viewing for an existing property. The property
// title is copied onto the appointment so the admin list needs no join.
func (s *appointmentService) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return nil, ErrPropertyNotFound
	}

	var property struct {
		Title        string `bson:"title"`
		OwnerDetails struct {
			Name string `bson:"name"`
		} `bson:"ownerDetails"`
	}
	opts := options.FindOne().SetProjection(bson.M{"title": 1, "ownerDetails.name": 1})
	err = s.db.Collection(db.PropertiesCollection).FindOne(ctx, bson.M{"_id": propertyID}, opts).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("error checking property %s for appointment: %w", req.PropertyID, err)
	}

	now := time.Now().UTC()
	appt := &models.Appointment{
		ID:            primitive.NewObjectID(),
		PropertyID:    propertyID,
		PropertyTitle: property.Title,
		Date:          req.Date.UTC(),
		TimeSlot:      strings.TrimSpace(req.TimeSlot),
		ClientName:    strings.TrimSpace(req.ClientName),
		ClientEmail:   strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientPhone:   strings.TrimSpace(req.ClientPhone),
		OwnerName:     property.OwnerDetails.Name,
		OwnerNotes:    strings.TrimSpace(req.Notes),
		Status:        models.AppointmentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := db.InsertOne(ctx, s.db.Collection(db.AppointmentsCollection), appt.ID, appt); err != nil {
		return nil, fmt.Errorf("failed to insert appointment for property %s: %w", req.PropertyID, err)
	}

	log.Printf("Appointment %s booked for property %s", appt.ID.Hex(), req.PropertyID)
	return appt, nil
}

// ListAppointments returns appointments by viewing date, optionally restricted to one status.
func (s *appointmentService) ListAppointments(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	q := bson.M{}
	if status != "" {
		q["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "createdAt", Value: 1}})

	cur, err := s.db.Collection(db.AppointmentsCollection).Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cur.Close(ctx)

	results := []models.Appointment{}
	if err := cur.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return results, nil
}

// UpdateAppointmentStatus moves an appointment to status, recording agent notes when given.
func (s *appointmentService) UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus, agentNotes string) (*models.Appointment, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown appointment status %q", ErrInvalidTransition, status)
	}
	set := bson.M{"status": status, "updatedAt": time.Now().UTC()}
	if notes := strings.TrimSpace(agentNotes); notes != "" {
		set["agentNotes"] = notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err := s.db.Collection(db.AppointmentsCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id.Hex(), err)
	}
	return &updated, nil
}

// DeleteAppointment removes an appointment.
func (s *appointmentService) DeleteAppointment(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection(db.AppointmentsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
