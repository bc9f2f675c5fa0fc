package models

import "time"

// Appointment is the durable record of a completed booking. The calendar
// event remains the scheduling source of truth; this is the shop's own copy.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	Vehicle         string    `bson:"vehicle" json:"vehicle"`
	CustomerName    string    `bson:"customerName" json:"customerName"`
	CustomerPhone   string    `bson:"customerPhone" json:"customerPhone"`
	Start           time.Time `bson:"start" json:"start"`
	End             time.Time `bson:"end" json:"end"`
	CalendarEventID string    `bson:"calendarEventId" json:"calendarEventId"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
