package models

import "time"

// Cleaner is a staff member who can be assigned to orders.
type Cleaner struct {
	ID            string    `bson:"id" json:"id"`
	FullName      string    `bson:"full_name" json:"full_name"`
	Phone         string    `bson:"phone" json:"phone"`
	Email         string    `bson:"email" json:"email"`
	CalendarEmail string    `bson:"calendar_email,omitempty" json:"calendar_email,omitempty"`
	ServiceIDs    []string  `bson:"service_ids" json:"service_ids"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}
