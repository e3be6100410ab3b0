package models

import "time"

// Operator holds the structure for the operator collection in mongo.
// Operators are the dashboard/API users that authenticate against the service.
type Operator struct {
	ID        string    `json:"_id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name" bson:"name"`
	Password  string    `json:"-" bson:"password"`
	Roles     []string  `json:"roles" bson:"roles"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
