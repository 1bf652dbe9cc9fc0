package models

import "time"

type Banner struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Image     string    `json:"image" bson:"image"`
	IsActive  bool      `json:"isActive" bson:"isActive"`
	Order     int       `json:"order" bson:"order"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Announcement struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Notification is a dead-letter record for an outbound mail that could not
// be delivered.
type Notification struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Kind      string    `json:"kind" bson:"kind"`
	To        []string  `json:"to" bson:"to"`
	Subject   string    `json:"subject" bson:"subject"`
	Body      string    `json:"body" bson:"body"`
	Attempts  int       `json:"attempts" bson:"attempts"`
	LastError string    `json:"lastError" bson:"lastError"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
