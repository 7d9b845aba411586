package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppointmentStatus tracks a viewing request through to completion.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

var appointmentStatuses = newEnumSet(AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled)

func (s AppointmentStatus) IsValid() bool { return appointmentStatuses.has(s) }

// Appointment is a prospective buyer's request to view a property.
type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	PropertyTitle string             `bson:"propertyTitle" json:"propertyTitle"` // Denormalized from Property
	Date          time.Time          `bson:"date" json:"date"`
	TimeSlot      string             `bson:"timeSlot" json:"timeSlot"`
	ClientName    string             `bson:"clientName" json:"clientName"`
	ClientEmail   string             `bson:"clientEmail" json:"clientEmail"`
	ClientPhone   string             `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	OwnerName     string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Status        AppointmentStatus  `bson:"status" json:"status"`
	AgentNotes    string             `bson:"agentNotes,omitempty" json:"agentNotes,omitempty"`
	OwnerNotes    string             `bson:"ownerNotes,omitempty" json:"ownerNotes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AppointmentRequest is the public booking form.
type AppointmentRequest struct {
	PropertyID  string    `json:"propertyId" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	TimeSlot    string    `json:"timeSlot" binding:"required"`
	ClientName  string    `json:"clientName" binding:"required,min=2"`
	ClientEmail string    `json:"clientEmail" binding:"required,email"`
	ClientPhone string    `json:"clientPhone"`
	Notes       string    `json:"notes"`
}
