package response_models

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type WeatherDay struct {
	Date                     string  `json:"date" bson:"date"`
	TempMax                  float64 `json:"tempMax" bson:"tempMax"`
	TempMin                  float64 `json:"tempMin" bson:"tempMin"`
	Temp                     float64 `json:"temp" bson:"temp"`
	PrecipitationProbability float64 `json:"precipProb" bson:"precipProb"`
	Conditions               string  `json:"conditions" bson:"conditions"`
	Icon                     string  `json:"icon" bson:"icon"`
}

type WeatherData struct {
	ResolvedAddress string       `json:"resolvedAddress" bson:"resolvedAddress"`
	Timezone        string       `json:"timezone" bson:"timezone"`
	Days            []WeatherDay `json:"days" bson:"days"`
}

type Place struct {
	PlaceID          string   `json:"placeId" bson:"placeId"`
	Name             string   `json:"name" bson:"name"`
	Address          string   `json:"address" bson:"address"`
	Rating           *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	UserRatingsTotal int      `json:"userRatingsTotal" bson:"userRatingsTotal"`
	Types            []string `json:"types" bson:"types"`
	Lat              float64  `json:"lat" bson:"lat"`
	Lng              float64  `json:"lng" bson:"lng"`
	PriceLevel       *int     `json:"priceLevel,omitempty" bson:"priceLevel,omitempty"`
	Price            *float64 `json:"price,omitempty" bson:"price,omitempty"`
	PriceCurrency    string   `json:"priceCurrency,omitempty" bson:"priceCurrency,omitempty"`
	Stars            *int     `json:"stars,omitempty" bson:"stars,omitempty"`
}

type PlacesData struct {
	Attractions []Place `json:"attractions" bson:"attractions"`
	Restaurants []Place `json:"restaurants" bson:"restaurants"`
	Hotels      []Place `json:"hotels" bson:"hotels"`
}

type HotelPrice struct {
	HotelID  string   `json:"hotelId"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Stars    *int     `json:"stars,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// EnrichmentBundle fields are independently optional; nil means the source failed or was skipped.
type EnrichmentBundle struct {
	WeatherData         *WeatherData `json:"weatherData" bson:"weatherData"`
	PlacesData          *PlacesData  `json:"placesData" bson:"placesData"`
	DestinationLat      *float64     `json:"destinationLat" bson:"destinationLat"`
	DestinationLng      *float64     `json:"destinationLng" bson:"destinationLng"`
	DestinationTimezone *string      `json:"destinationTimezone,omitempty" bson:"destinationTimezone,omitempty"`
}
