package services

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"tripwise/internal/models/response_models"
	"tripwise/pkg/utils"
)

// BuildItineraryCalendar renders one all-day event per itinerary day.
func BuildItineraryCalendar(plan *response_models.TripPlanResponse, now time.Time) (string, error) {
	start, err := time.Parse(utils.DayLayout, plan.StartDate)
	if err != nil {
		return "", fmt.Errorf("plan start date %q: %w", plan.StartDate, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//tripwise//itinerary//EN")
	cal.SetXWRCalName(plan.Plan.TripHighlights.Title)
	if tz := plan.Enrichment.DestinationTimezone; tz != nil {
		cal.SetXWRTimezone(*tz)
	}

	location := plan.Destination
	if plan.DestinationCountry != "" {
		location += ", " + plan.DestinationCountry
	}

	for i, day := range plan.Plan.Itinerary {
		date := start.AddDate(0, 0, i)
		if parsed, err := time.Parse(utils.DayLayout, day.Date); err == nil {
			date = parsed
		}

		event := cal.AddEvent(fmt.Sprintf("%s-day-%d@tripwise", plan.ID, i+1))
		event.SetDtStampTime(now.UTC())
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.SetSummary(daySummary(i+1, day))
		event.SetDescription(dayDescription(day))
		event.SetLocation(location)
	}

	return cal.Serialize(), nil
}

func daySummary(n int, day response_models.ItineraryDay) string {
	if day.Title == "" {
		return fmt.Sprintf("Day %d", n)
	}
	return fmt.Sprintf("Day %d: %s", n, day.Title)
}

func dayDescription(day response_models.ItineraryDay) string {
	var b strings.Builder
	writeBlock := func(label string, block response_models.TimeBlock) {
		if len(block.Activities) == 0 {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, strings.Join(block.Activities, "; "))
	}
	writeBlock("Morning", day.Morning)
	writeBlock("Afternoon", day.Afternoon)
	writeBlock("Evening", day.Evening)
	if day.Night != nil {
		writeBlock("Night", *day.Night)
	}
	if len(day.FoodRecommendations) > 0 {
		fmt.Fprintf(&b, "Food: %s\n", strings.Join(day.FoodRecommendations, "; "))
	}
	if day.Tip != "" {
		fmt.Fprintf(&b, "Tip: %s\n", day.Tip)
	}
	return strings.TrimSpace(b.String())
}
