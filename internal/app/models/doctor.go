package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Doctor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	WorkingDays  []string           `bson:"workingDays"`
	WorkingHours WorkingHours       `bson:"workingHours"`
	Fee          float64            `bson:"fee"`
}

// WorkingHours are "HH:MM" wall-clock bounds in the app timezone.
type WorkingHours struct {
	Start string `bson:"start"`
	End   string `bson:"end"`
}
