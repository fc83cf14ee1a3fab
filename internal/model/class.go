// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Class statuses. A class is either open for enrolment or parked.
// Stored and transmitted as the literal strings, never as numbers.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Statuses lists the valid status values in display order.
var Statuses = []string{StatusActive, StatusInactive}

// Class represents a tuition class record as persisted and served by the API.
//
// ID is server-assigned (xid) — a record without an ID has never been saved.
// Dates are "YYYY-MM-DD" strings; an empty string means "not set" and the
// `omitempty` tag keeps it off the wire entirely.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize this
// struct. Field names mirror the wire format the browse and admin clients expect.
type Class struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title" validate:"required,min=3,max=80"`
	Subject   string    `json:"subject" validate:"required"`
	Grade     string    `json:"grade" validate:"required"`
	Teacher   string    `json:"teacher" validate:"required,min=3,max=60"`
	Schedule  string    `json:"schedule" validate:"required"`
	Room      string    `json:"room" validate:"required"`
	Capacity  int       `json:"capacity" validate:"required,min=1,max=500"`
	Fee       float64   `json:"fee" validate:"gte=0"`
	Currency  string    `json:"currency" validate:"required,len=3,uppercase"`
	Status    string    `json:"status" validate:"required,oneof=Active Inactive"`
	StartDate string    `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string    `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
