package request_models

// TripPlanRequest is the raw generation form. StartDate and EndDate accept a
// "YYYY-MM-DD" string, any ISO-ish date string, or a time.Time from Go callers.
type TripPlanRequest struct {
	StartingLocation      string   `json:"startingLocation"`
	Destination           string   `json:"destination"`
	StartDate             any      `json:"startDate"`
	EndDate               any      `json:"endDate"`
	Themes                []string `json:"themes"`
	TravelPace            string   `json:"travelPace"`
	WeatherPreferences    []string `json:"weatherPreferences"`
	Accommodation         []string `json:"accommodation"`
	Food                  []string `json:"food"`
	Transport             []string `json:"transport"`
	Currency              string   `json:"currency"`
	Budget                float64  `json:"budget"`
	Adults                int      `json:"adults"`
	Children              int      `json:"children"`
	Infants               int      `json:"infants"`
	AdditionalPreferences string   `json:"additionalPreferences"`
}

type ListTripPlansQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=10"`
}
