package services

import (
	"fmt"
	"strings"

	"tripwise/pkg/utils"
)

const (
	stayShareMin = 0.30
	stayShareMax = 0.45
)

const planJSONShape = `{
  "tripHighlights": {
    "title": "Short catchy trip title",
    "description": "2-3 sentence overview of the trip"
  },
  "itinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "title": "Theme of the day",
      "morning": { "activities": ["Activity with place name"], "description": "What the morning feels like" },
      "afternoon": { "activities": ["Activity with place name"], "description": "..." },
      "evening": { "activities": ["Activity with place name"], "description": "..." },
      "night": { "activities": ["Optional late activity"], "description": "..." },
      "foodRecommendations": ["Dish or restaurant - short reason - approx price"],
      "stayOptions": ["Hotel name - area - price per night"],
      "optionalActivities": ["Alternative activity"],
      "quickBookings": ["Ticket or reservation worth booking ahead"],
      "tip": "One practical local tip"
    }
  ],
  "bestTimeToVisit": {
    "description": "When and why",
    "peakSeason": "Months and what to expect",
    "shoulderSeason": "Months and what to expect",
    "offSeason": "Months and what to expect"
  },
  "packingSuggestions": {
    "clothing": ["..."],
    "essentials": ["..."],
    "toiletries": ["..."],
    "electronics": ["..."],
    "documents": ["..."],
    "other": ["..."]
  }
}`

var paceDirectives = []struct {
	keys      []string
	directive string
}{
	{[]string{"relaxed"}, "Relaxed pace: at most 1-2 activities per time block, long meals, free time every afternoon, no early starts."},
	{[]string{"moderate", "balanced"}, "Balanced pace: 2-3 activities per time block with realistic travel time between them."},
	{[]string{"active", "fast", "packed"}, "Fast pace: 3-4 activities per time block, early starts, group nearby sights to maximise coverage."},
}

type directiveRule struct {
	keyword   string
	directive string
}

var foodDirectives = []directiveRule{
	{"vegan", "Every food recommendation must be fully vegan and say so."},
	{"vegetarian", "Every food recommendation must be vegetarian-friendly and name a vegetarian dish."},
	{"halal", "Prefer halal-certified restaurants and mention it."},
	{"street", "Favour street food stalls and markets, with stall names where known."},
	{"local", "Prioritise traditional local dishes and family-run places over international chains."},
	{"fine", "Include at least one fine-dining or tasting-menu option per day."},
	{"budget", "Keep meals inexpensive; mention typical prices."},
}

var accommodationDirectives = []directiveRule{
	{"luxury", "Stay options should be 5-star or luxury boutique properties."},
	{"boutique", "Stay options should be characterful boutique hotels."},
	{"hostel", "Stay options should be well-rated hostels or guesthouses."},
	{"budget", "Stay options should be clean budget hotels or guesthouses."},
	{"apartment", "Include serviced apartments or rentals among the stay options."},
	{"resort", "Include resorts with on-site amenities among the stay options."},
	{"mid", "Stay options should be comfortable mid-range hotels."},
}

// BuildTripPrompt renders the generation prompt. Identical input gives identical output.
func BuildTripPrompt(req *TripRequest, dates *NormalizedDates) string {
	symbol := CurrencySymbol(req.Currency)
	perDay := req.Budget / float64(dates.Days)
	stayMin := perDay * stayShareMin
	stayMax := perDay * stayShareMax
	lastDay := dates.DateList[len(dates.DateList)-1]

	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary from %s to %s.\n\n",
		dates.Days, req.StartingLocation, req.Destination)

	b.WriteString("TRIP DETAILS\n")
	fmt.Fprintf(&b, "- Starting location: %s\n", req.StartingLocation)
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Dates: %s to %s (%d days, both inclusive)\n",
		utils.FormatDay(dates.Start), utils.FormatDay(dates.End), dates.Days)
	fmt.Fprintf(&b, "- Travelers: %d adult(s), %d child(ren), %d infant(s)\n", req.Adults, req.Children, req.Infants)
	fmt.Fprintf(&b, "- Currency: %s (symbol %s). Write every price with the %s symbol.\n", req.Currency, symbol, symbol)
	fmt.Fprintf(&b, "- Total budget: %s%s for the whole group\n", symbol, formatAmount(req.Budget))
	fmt.Fprintf(&b, "- Budget share per day: %s%s\n\n", symbol, formatAmount(perDay))

	b.WriteString("PREFERENCES\n")
	fmt.Fprintf(&b, "- Themes: %s\n", listOrDefault(req.Themes))
	fmt.Fprintf(&b, "- Travel pace: %s\n", valueOrDefault(req.TravelPace))
	fmt.Fprintf(&b, "- Weather preferences: %s\n", listOrDefault(req.WeatherPreferences))
	fmt.Fprintf(&b, "- Accommodation: %s\n", listOrDefault(req.Accommodation))
	fmt.Fprintf(&b, "- Food: %s\n", listOrDefault(req.Food))
	fmt.Fprintf(&b, "- Transport: %s\n", listOrDefault(req.Transport))
	fmt.Fprintf(&b, "- Additional preferences: %s\n\n", valueOrDefault(req.AdditionalPreferences))

	b.WriteString("DAYS TO PLAN\n")
	for i, day := range dates.DateList {
		fmt.Fprintf(&b, "- Day %d: %s\n", i+1, day)
	}
	b.WriteString("\n")

	b.WriteString("RULES\n")
	if dates.Days == 1 {
		fmt.Fprintf(&b, "- Day 1 (%s) is both the arrival and departure day: plan travel from %s, then only 1-2 light activities near the arrival point.\n",
			dates.DateList[0], req.StartingLocation)
	} else {
		fmt.Fprintf(&b, "- Day 1 (%s) is a travel day: the group arrives from %s. Plan check-in and at most 1-2 light activities close to the stay.\n",
			dates.DateList[0], req.StartingLocation)
		fmt.Fprintf(&b, "- Day %d (%s) is a travel day: checkout and the return trip to %s. Plan only a short morning activity near the stay.\n",
			dates.Days, lastDay, req.StartingLocation)
	}
	fmt.Fprintf(&b, "- Stay option prices are per night and must fall between %s%s and %s%s (30-45%% of the daily budget share, not of the total budget).\n",
		symbol, formatAmount(stayMin), symbol, formatAmount(stayMax))
	b.WriteString("- " + paceDirective(req.TravelPace) + "\n")
	for _, d := range matchDirectives(req.Food, foodDirectives) {
		b.WriteString("- " + d + "\n")
	}
	for _, d := range matchDirectives(req.Accommodation, accommodationDirectives) {
		b.WriteString("- " + d + "\n")
	}
	if req.Children > 0 || req.Infants > 0 {
		b.WriteString("- The group travels with children: prefer family-friendly activities and avoid late nights.\n")
	}
	fmt.Fprintf(&b, "- The itinerary array must contain exactly %d entries in day order, with \"day\" 1..%d and \"date\" matching the list above.\n",
		dates.Days, dates.Days)
	b.WriteString("- Use real, specific place names. Keep the \"night\" block only when there is a worthwhile late activity.\n\n")

	b.WriteString("Return ONLY a JSON object with exactly this shape (no markdown, no commentary):\n")
	b.WriteString(planJSONShape)
	b.WriteString("\n")

	return b.String()
}

func paceDirective(pace string) string {
	for _, p := range paceDirectives {
		for _, k := range p.keys {
			if pace == k {
				return p.directive
			}
		}
	}
	return paceDirectives[1].directive
}

func matchDirectives(prefs []string, table []directiveRule) []string {
	var out []string
	for _, entry := range table {
		for _, pref := range prefs {
			if strings.Contains(strings.ToLower(pref), entry.keyword) {
				out = append(out, entry.directive)
				break
			}
		}
	}
	return out
}

func listOrDefault(values []string) string {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return "No specific preference"
	}
	return strings.Join(kept, ", ")
}

func valueOrDefault(v string) string {
	if strings.TrimSpace(v) == "" {
		return "No specific preference"
	}
	return v
}
