package db_models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"tripwise/internal/models/response_models"
)

type Travelers struct {
	Adults   int `bson:"adults"`
	Children int `bson:"children"`
	Infants  int `bson:"infants"`
}

type TripPreferences struct {
	Themes                []string `bson:"themes"`
	TravelPace            string   `bson:"travelPace"`
	WeatherPreferences    []string `bson:"weatherPreferences"`
	Accommodation         []string `bson:"accommodation"`
	Food                  []string `bson:"food"`
	Transport             []string `bson:"transport"`
	AdditionalPreferences string   `bson:"additionalPreferences"`
}

// TripPlan is written once at the end of a successful generation and never updated.
// Itinerary holds the repaired AI plan as a JSON string.
type TripPlan struct {
	ID                 primitive.ObjectID               `bson:"_id,omitempty"`
	OwnerID            string                           `bson:"ownerId"`
	StartingLocation   string                           `bson:"startingLocation"`
	Destination        string                           `bson:"destination"`
	DestinationCountry string                           `bson:"destinationCountry"`
	StartDate          time.Time                        `bson:"startDate"`
	EndDate            time.Time                        `bson:"endDate"`
	Duration           int                              `bson:"duration"`
	Currency           string                           `bson:"currency"`
	Budget             float64                          `bson:"budget"`
	BudgetBreakdown    response_models.BudgetBreakdown  `bson:"budgetBreakdown"`
	Travelers          Travelers                        `bson:"travelers"`
	Preferences        TripPreferences                  `bson:"preferences"`
	Title              string                           `bson:"title"`
	Itinerary          string                           `bson:"itinerary"`
	Enrichment         response_models.EnrichmentBundle `bson:"enrichment"`
	DestinationImage   *string                          `bson:"destinationImage,omitempty"`
	CreatedAt          time.Time                        `bson:"createdAt"`
}
