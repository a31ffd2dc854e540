package services

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

const completePlanJSON = `{
  "tripHighlights": {"title": "Paris in Bloom", "description": "Five days of art and food."},
  "itinerary": [
    {
      "day": 1, "date": "2025-06-01", "title": "Arrival",
      "morning": {"activities": ["Land at CDG"], "description": "Travel"},
      "afternoon": {"activities": ["Check in"], "description": "Settle"},
      "evening": {"activities": ["Seine walk"], "description": "Easy stroll"},
      "night": {"activities": ["Eiffel sparkle"], "description": "Lights"},
      "foodRecommendations": ["Croissant at Du Pain et des Idees"],
      "stayOptions": ["Hotel Le Marais - $150/night"],
      "optionalActivities": ["Canal Saint-Martin"],
      "quickBookings": ["Louvre tickets"],
      "tip": "Buy a Navigo pass"
    },
    {
      "day": 2, "date": "2025-06-02", "title": "Museums",
      "morning": {"activities": ["Louvre"], "description": "Art"},
      "afternoon": {"activities": ["Tuileries"], "description": "Gardens"},
      "evening": {"activities": ["Montmartre"], "description": "Views"},
      "foodRecommendations": ["Bistrot Paul Bert"],
      "stayOptions": ["Hotel Le Marais - $150/night"],
      "optionalActivities": [],
      "quickBookings": [],
      "tip": "Go early"
    }
  ],
  "bestTimeToVisit": {"description": "Spring and autumn", "peakSeason": "Jun-Aug", "shoulderSeason": "Apr-May, Sep-Oct", "offSeason": "Nov-Mar"},
  "packingSuggestions": {
    "clothing": ["Light jacket"], "essentials": ["Umbrella"], "toiletries": ["Sunscreen"],
    "electronics": ["Type E adapter"], "documents": ["Passport"], "other": ["Tote bag"]
  }
}`

func TestRepairAIPlan_CompletePayloadUnchanged(t *testing.T) {
	var want response_models.AIPlanData
	if err := json.Unmarshal([]byte(completePlanJSON), &want); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	got, err := RepairAIPlan(completePlanJSON, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("repair changed a complete payload\n got: %+v\nwant: %+v", *got, want)
	}

	// Feeding the output back in must be a fixed point.
	encoded, _ := json.Marshal(got)
	again, err := RepairAIPlan(string(encoded), 2, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan second pass: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Error("repair is not idempotent")
	}
}

func TestRepairAIPlan_KeepsEmptyStringItems(t *testing.T) {
	raw := `{"itinerary": [{"day": 1, "morning": {"activities": ["a", ""], "description": ""}, "foodRecommendations": ["", "Crepes"]}]}`

	got, err := RepairAIPlan(raw, 1, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	day := got.Itinerary[0]
	if !reflect.DeepEqual(day.Morning.Activities, []string{"a", ""}) {
		t.Errorf("expected activities [a \"\"], got %#v", day.Morning.Activities)
	}
	if !reflect.DeepEqual(day.FoodRecommendations, []string{"", "Crepes"}) {
		t.Errorf("expected food recommendations kept in order, got %#v", day.FoodRecommendations)
	}
}

func TestRepairAIPlan_SkipsBracketedChatter(t *testing.T) {
	got, err := RepairAIPlan("Sure {here it is}:\n"+completePlanJSON, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	if got.TripHighlights.Title != "Paris in Bloom" || len(got.Itinerary) != 2 {
		t.Errorf("expected the plan after the chatter, got %+v", got.TripHighlights)
	}
}

func TestRepairAIPlan_FillsMissingPackingKey(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(completePlanJSON), &doc); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	delete(doc["packingSuggestions"].(map[string]any), "electronics")

	got, err := RepairAIPlan(doc, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}

	p := got.PackingSuggestions
	if p.Electronics == nil || len(p.Electronics) != 0 {
		t.Errorf("expected electronics to be an empty list, got %#v", p.Electronics)
	}
	if !reflect.DeepEqual(p.Clothing, []string{"Light jacket"}) || !reflect.DeepEqual(p.Documents, []string{"Passport"}) {
		t.Errorf("other packing keys must be preserved, got %+v", p)
	}

	encoded, _ := json.Marshal(p)
	if !strings.Contains(string(encoded), `"electronics":[]`) {
		t.Errorf("electronics should serialise as [], got %s", encoded)
	}
}

func TestRepairAIPlan_DefaultsMissingSections(t *testing.T) {
	got, err := RepairAIPlan("```json\n{\"itinerary\": \"oops\"}\n```", 3, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	if got.TripHighlights != defaultTripHighlights() {
		t.Errorf("expected default highlights, got %+v", got.TripHighlights)
	}
	if got.BestTimeToVisit != defaultBestTimeToVisit() {
		t.Errorf("expected default best time, got %+v", got.BestTimeToVisit)
	}
	if !reflect.DeepEqual(got.PackingSuggestions, defaultPackingSuggestions()) {
		t.Errorf("expected default packing, got %+v", got.PackingSuggestions)
	}
	if got.Itinerary == nil || len(got.Itinerary) != 0 {
		t.Errorf("malformed itinerary should become an empty list, got %#v", got.Itinerary)
	}
}

func TestRepairAIPlan_CoercesLooseDays(t *testing.T) {
	raw := `{"itinerary": [
		{"date": "2025-06-01", "morning": ["Coffee", 3], "tip": 42},
		"not a day",
		{"day": "2", "evening": "Dinner cruise", "night": null}
	]}`

	got, err := RepairAIPlan(raw, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	if len(got.Itinerary) != 2 {
		t.Fatalf("expected 2 usable days, got %d", len(got.Itinerary))
	}
	first, second := got.Itinerary[0], got.Itinerary[1]
	if first.Day != 1 || !reflect.DeepEqual(first.Morning.Activities, []string{"Coffee", "3"}) || first.Tip != "42" {
		t.Errorf("unexpected first day %+v", first)
	}
	if second.Day != 2 || !reflect.DeepEqual(second.Evening.Activities, []string{"Dinner cruise"}) || second.Night != nil {
		t.Errorf("unexpected second day %+v", second)
	}
	if first.FoodRecommendations == nil || second.StayOptions == nil {
		t.Error("list fields must never be nil")
	}
}

func TestRepairAIPlan_RejectsNonJSON(t *testing.T) {
	for _, raw := range []any{"I'm sorry, I can't do that.", `["a", "b"]`, "42", nil} {
		_, err := RepairAIPlan(raw, 3, zap.NewNop())
		var aiErr *utils.AIServiceError
		if !errors.As(err, &aiErr) {
			t.Errorf("RepairAIPlan(%v): expected AIServiceError, got %v", raw, err)
		}
	}
}

func TestRepairAIPlan_WarnsOnShortItinerary(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	got, err := RepairAIPlan(completePlanJSON, 5, zap.New(core))
	if err != nil {
		t.Fatalf("RepairAIPlan: %v", err)
	}
	if len(got.Itinerary) != 2 {
		t.Errorf("short itinerary must not be padded, got %d days", len(got.Itinerary))
	}
	if logs.FilterMessage("AI itinerary shorter than requested trip").Len() != 1 {
		t.Error("expected one warning about the short itinerary")
	}
}
