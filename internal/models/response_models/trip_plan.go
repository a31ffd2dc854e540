package response_models

type TripHighlights struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TimeBlock struct {
	Activities  []string `json:"activities"`
	Description string   `json:"description"`
}

type ItineraryDay struct {
	Day                 int        `json:"day"`
	Date                string     `json:"date"`
	Title               string     `json:"title"`
	Morning             TimeBlock  `json:"morning"`
	Afternoon           TimeBlock  `json:"afternoon"`
	Evening             TimeBlock  `json:"evening"`
	Night               *TimeBlock `json:"night,omitempty"`
	FoodRecommendations []string   `json:"foodRecommendations"`
	StayOptions         []string   `json:"stayOptions"`
	OptionalActivities  []string   `json:"optionalActivities"`
	QuickBookings       []string   `json:"quickBookings"`
	Tip                 string     `json:"tip"`
}

type BestTimeToVisit struct {
	Description    string `json:"description"`
	PeakSeason     string `json:"peakSeason"`
	ShoulderSeason string `json:"shoulderSeason"`
	OffSeason      string `json:"offSeason"`
}

type PackingSuggestions struct {
	Clothing    []string `json:"clothing"`
	Essentials  []string `json:"essentials"`
	Toiletries  []string `json:"toiletries"`
	Electronics []string `json:"electronics"`
	Documents   []string `json:"documents"`
	Other       []string `json:"other"`
}

// AIPlanData is the fully populated shape produced by the AI response repairer.
type AIPlanData struct {
	TripHighlights     TripHighlights     `json:"tripHighlights"`
	Itinerary          []ItineraryDay     `json:"itinerary"`
	BestTimeToVisit    BestTimeToVisit    `json:"bestTimeToVisit"`
	PackingSuggestions PackingSuggestions `json:"packingSuggestions"`
}

type BudgetBreakdown struct {
	Currency        string  `json:"currency" bson:"currency"`
	Symbol          string  `json:"symbol" bson:"symbol"`
	Total           float64 `json:"total" bson:"total"`
	PerDay          float64 `json:"perDay" bson:"perDay"`
	PerPerson       float64 `json:"perPerson" bson:"perPerson"`
	StayPerNightMin float64 `json:"stayPerNightMin" bson:"stayPerNightMin"`
	StayPerNightMax float64 `json:"stayPerNightMax" bson:"stayPerNightMax"`
	FormattedTotal  string  `json:"formattedTotal" bson:"formattedTotal"`
	FormattedPerDay string  `json:"formattedPerDay" bson:"formattedPerDay"`
}

type TripPlanResponse struct {
	ID                  string           `json:"id"`
	StartingLocation    string           `json:"startingLocation"`
	Destination         string           `json:"destination"`
	DestinationCountry  string           `json:"destinationCountry"`
	StartDate           string           `json:"startDate"`
	EndDate             string           `json:"endDate"`
	Duration            int              `json:"duration"`
	Currency            string           `json:"currency"`
	Budget              float64          `json:"budget"`
	BudgetBreakdown     BudgetBreakdown  `json:"budgetBreakdown"`
	Plan                AIPlanData       `json:"plan"`
	Enrichment          EnrichmentBundle `json:"enrichment"`
	DestinationImage    *string          `json:"destinationImage,omitempty"`
	CreatedAt           int64            `json:"createdAt"`
	ItineraryIsComplete bool             `json:"itineraryIsComplete"`
}

type TripPlanSummary struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Destination        string  `json:"destination"`
	DestinationCountry string  `json:"destinationCountry"`
	StartDate          string  `json:"startDate"`
	EndDate            string  `json:"endDate"`
	Duration           int     `json:"duration"`
	DestinationImage   *string `json:"destinationImage,omitempty"`
	CreatedAt          int64   `json:"createdAt"`
}
