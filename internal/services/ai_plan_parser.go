package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

const (
	defaultHighlightsTitle       = "Your Trip Itinerary"
	defaultHighlightsDescription = "A personalized travel plan for your upcoming trip."
	defaultBestTimeDescription   = "Seasonal information was not available for this destination."
)

func defaultTripHighlights() response_models.TripHighlights {
	return response_models.TripHighlights{
		Title:       defaultHighlightsTitle,
		Description: defaultHighlightsDescription,
	}
}

func defaultBestTimeToVisit() response_models.BestTimeToVisit {
	return response_models.BestTimeToVisit{Description: defaultBestTimeDescription}
}

func defaultPackingSuggestions() response_models.PackingSuggestions {
	return response_models.PackingSuggestions{
		Clothing:    []string{},
		Essentials:  []string{},
		Toiletries:  []string{},
		Electronics: []string{},
		Documents:   []string{},
		Other:       []string{},
	}
}

// RepairAIPlan coerces a model response into a fully populated AIPlanData.
// Only input that is not a JSON object fails; missing or malformed sections get defaults.
// A short itinerary is logged and returned as is.
func RepairAIPlan(raw any, expectedDays int, logger *zap.Logger) (*response_models.AIPlanData, error) {
	doc, err := toJSONObject(raw)
	if err != nil {
		return nil, err
	}

	plan := &response_models.AIPlanData{
		TripHighlights:     repairHighlights(doc["tripHighlights"]),
		Itinerary:          repairItinerary(doc["itinerary"]),
		BestTimeToVisit:    repairBestTime(doc["bestTimeToVisit"]),
		PackingSuggestions: repairPacking(doc["packingSuggestions"]),
	}

	if len(plan.Itinerary) < expectedDays {
		logger.Warn("AI itinerary shorter than requested trip",
			zap.Int("expected_days", expectedDays),
			zap.Int("returned_days", len(plan.Itinerary)))
	}

	return plan, nil
}

func toJSONObject(raw any) (map[string]any, error) {
	var text string
	switch v := raw.(type) {
	case nil:
		return nil, &utils.AIServiceError{Message: "AI response was empty"}
	case map[string]any:
		return v, nil
	case string:
		text = v
	case []byte:
		text = string(v)
	case json.RawMessage:
		text = string(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, &utils.AIServiceError{Message: "could not parse AI response as JSON", Cause: err}
		}
		text = string(encoded)
	}

	var parsed any
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(text)), &parsed); err != nil {
		return nil, &utils.AIServiceError{Message: "could not parse AI response as JSON", Cause: err}
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &utils.AIServiceError{Message: "AI response is not a JSON object"}
	}
	return obj, nil
}

func repairHighlights(v any) response_models.TripHighlights {
	obj, ok := v.(map[string]any)
	if !ok {
		return defaultTripHighlights()
	}
	h := response_models.TripHighlights{
		Title:       asString(obj["title"]),
		Description: asString(obj["description"]),
	}
	if h.Title == "" {
		h.Title = defaultHighlightsTitle
	}
	if h.Description == "" {
		h.Description = defaultHighlightsDescription
	}
	return h
}

func repairItinerary(v any) []response_models.ItineraryDay {
	items, ok := v.([]any)
	if !ok {
		return []response_models.ItineraryDay{}
	}

	days := make([]response_models.ItineraryDay, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		day := response_models.ItineraryDay{
			Day:                 asInt(obj["day"], len(days)+1),
			Date:                asString(obj["date"]),
			Title:               asString(obj["title"]),
			Morning:             repairTimeBlock(obj["morning"]),
			Afternoon:           repairTimeBlock(obj["afternoon"]),
			Evening:             repairTimeBlock(obj["evening"]),
			FoodRecommendations: asStringSlice(obj["foodRecommendations"]),
			StayOptions:         asStringSlice(obj["stayOptions"]),
			OptionalActivities:  asStringSlice(obj["optionalActivities"]),
			QuickBookings:       asStringSlice(obj["quickBookings"]),
			Tip:                 asString(obj["tip"]),
		}
		if night, present := obj["night"]; present && night != nil {
			block := repairTimeBlock(night)
			day.Night = &block
		}
		days = append(days, day)
	}
	return days
}

func repairTimeBlock(v any) response_models.TimeBlock {
	switch b := v.(type) {
	case map[string]any:
		return response_models.TimeBlock{
			Activities:  asStringSlice(b["activities"]),
			Description: asString(b["description"]),
		}
	case []any, string:
		return response_models.TimeBlock{Activities: asStringSlice(b)}
	default:
		return response_models.TimeBlock{Activities: []string{}}
	}
}

func repairBestTime(v any) response_models.BestTimeToVisit {
	obj, ok := v.(map[string]any)
	if !ok {
		return defaultBestTimeToVisit()
	}
	b := response_models.BestTimeToVisit{
		Description:    asString(obj["description"]),
		PeakSeason:     asString(obj["peakSeason"]),
		ShoulderSeason: asString(obj["shoulderSeason"]),
		OffSeason:      asString(obj["offSeason"]),
	}
	if b.Description == "" {
		b.Description = defaultBestTimeDescription
	}
	return b
}

func repairPacking(v any) response_models.PackingSuggestions {
	obj, ok := v.(map[string]any)
	if !ok {
		return defaultPackingSuggestions()
	}
	return response_models.PackingSuggestions{
		Clothing:    asStringSlice(obj["clothing"]),
		Essentials:  asStringSlice(obj["essentials"]),
		Toiletries:  asStringSlice(obj["toiletries"]),
		Electronics: asStringSlice(obj["electronics"]),
		Documents:   asStringSlice(obj["documents"]),
		Other:       asStringSlice(obj["other"]),
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// asStringSlice never returns nil so repaired plans serialise arrays as [].
// String items are kept verbatim, empty ones included; null and nested values are dropped.
func asStringSlice(v any) []string {
	switch s := v.(type) {
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			switch item.(type) {
			case string, float64, bool:
				out = append(out, asString(item))
			}
		}
		return out
	case string:
		if strings.TrimSpace(s) == "" {
			return []string{}
		}
		return []string{s}
	default:
		return []string{}
	}
}

func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		if n >= 1 {
			return int(n)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && i >= 1 {
			return i
		}
	}
	return fallback
}
