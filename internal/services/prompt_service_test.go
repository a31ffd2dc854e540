package services

import (
	"strings"
	"testing"
)

func mustValidate(t *testing.T, mutate func(r *TripRequest)) (*TripRequest, *NormalizedDates) {
	t.Helper()
	req, dates, err := NewTripValidator(20).Validate(validParisRequest())
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mutate != nil {
		mutate(req)
	}
	return req, dates
}

func TestBuildTripPrompt_Deterministic(t *testing.T) {
	req, dates := mustValidate(t, func(r *TripRequest) {
		r.Themes = []string{"art", "food"}
		r.Food = []string{"Vegetarian", "Street food"}
		r.Accommodation = []string{"Boutique"}
	})

	first := BuildTripPrompt(req, dates)
	for i := 0; i < 5; i++ {
		if got := BuildTripPrompt(req, dates); got != first {
			t.Fatal("prompt changed between identical calls")
		}
	}
}

func TestBuildTripPrompt_Contents(t *testing.T) {
	req, dates := mustValidate(t, nil)
	prompt := BuildTripPrompt(req, dates)

	mustContain := []string{
		"5-day travel itinerary from Mumbai to Paris, FR",
		"2025-06-01 to 2025-06-05",
		"2 adult(s)",
		"symbol $",
		"$2,000",
		"Budget share per day: $400",
		"between $120 and $180",
		"Day 1 (2025-06-01) is a travel day",
		"Day 5 (2025-06-05) is a travel day",
		"exactly 5 entries",
		`"tripHighlights"`,
		`"bestTimeToVisit"`,
		`"packingSuggestions"`,
		`"electronics"`,
		`"quickBookings"`,
		"Balanced pace",
	}
	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing %q", s)
		}
	}
}

func TestBuildTripPrompt_PreferenceDirectives(t *testing.T) {
	req, dates := mustValidate(t, func(r *TripRequest) {
		r.TravelPace = "relaxed"
		r.Food = []string{"vegan"}
		r.Accommodation = []string{"Luxury hotels"}
		r.Children = 1
		r.Currency = "EUR"
	})
	prompt := BuildTripPrompt(req, dates)

	for _, s := range []string{"Relaxed pace", "fully vegan", "luxury boutique", "family-friendly", "€2,000"} {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing %q", s)
		}
	}
	if strings.Contains(prompt, "Fast pace") {
		t.Error("relaxed trip should not get the fast pace directive")
	}
}

func TestBuildTripPrompt_SingleDayTrip(t *testing.T) {
	req, dates := mustValidate(t, nil)
	dates.Days = 1
	dates.DateList = dates.DateList[:1]
	dates.End = dates.Start

	prompt := BuildTripPrompt(req, dates)
	if !strings.Contains(prompt, "both the arrival and departure day") {
		t.Error("single day trip should merge arrival and departure")
	}
	if !strings.Contains(prompt, "between $600 and $900") {
		t.Error("stay range should use the whole budget as the single day share")
	}
}

func TestCurrencySymbolAndFormatting(t *testing.T) {
	if CurrencySymbol("inr") != "₹" {
		t.Errorf("expected rupee symbol")
	}
	if CurrencySymbol("XOF") != "XOF" {
		t.Errorf("unknown currency should fall back to its code")
	}
	cases := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		1234567.5: "1,234,567.50",
		133.333:   "133.33",
	}
	for in, want := range cases {
		if got := formatAmount(in); got != want {
			t.Errorf("formatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}
