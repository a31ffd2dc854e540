package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"tripwise/internal/models/request_models"
	"tripwise/pkg/utils"
)

// ErrTripTooLong marks duration violations; their message is safe to show verbatim.
var ErrTripTooLong = errors.New("trip exceeds maximum duration")

var (
	strictDayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	isoPrefixPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[T ]`)

	fallbackDateLayouts = []string{
		time.RFC3339Nano,
		time.RFC1123Z,
		time.RFC1123,
		time.UnixDate,
		"Mon Jan 02 2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"02 Jan 2006",
		"2006/01/02",
		"01/02/2006",
	}
)

// TripRequest is the validated form of request_models.TripPlanRequest.
type TripRequest struct {
	StartingLocation      string    `validate:"required,max=200"`
	Destination           string    `validate:"required,max=200"`
	StartDate             time.Time `validate:"required"`
	EndDate               time.Time `validate:"required"`
	Themes                []string  `validate:"max=20,dive,max=100"`
	TravelPace            string    `validate:"omitempty,oneof=relaxed moderate balanced active fast packed"`
	WeatherPreferences    []string  `validate:"max=10,dive,max=100"`
	Accommodation         []string  `validate:"max=10,dive,max=100"`
	Food                  []string  `validate:"max=10,dive,max=100"`
	Transport             []string  `validate:"max=10,dive,max=100"`
	Currency              string    `validate:"required,len=3,currency_code"`
	Budget                float64   `validate:"gt=0"`
	Adults                int       `validate:"gte=1,lte=30"`
	Children              int       `validate:"gte=0,lte=30"`
	Infants               int       `validate:"gte=0,lte=10"`
	AdditionalPreferences string    `validate:"max=2000"`
}

func (r TripRequest) Travelers() int {
	return r.Adults + r.Children + r.Infants
}

type NormalizedDates struct {
	Start    time.Time
	End      time.Time
	Days     int
	DateList []string
}

type DestinationInfo struct {
	City    string
	Country string
}

type TripValidator struct {
	validate *validator.Validate
	maxDays  int
}

func NewTripValidator(maxDays int) *TripValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
		_, err := currency.ParseISO(fl.Field().String())
		return err == nil
	})
	tv := &TripValidator{validate: v, maxDays: maxDays}
	v.RegisterStructValidation(tv.validateDateRange, TripRequest{})
	return tv
}

func (tv *TripValidator) validateDateRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(TripRequest)
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return
	}
	if req.EndDate.Before(req.StartDate) {
		sl.ReportError(req.EndDate, "EndDate", "endDate", "gtestart", "")
		return
	}
	if inclusiveDays(req.StartDate, req.EndDate) > tv.maxDays {
		sl.ReportError(req.EndDate, "EndDate", "endDate", "maxdays", fmt.Sprint(tv.maxDays))
	}
}

// Validate normalizes the raw form and checks the whole object graph in one pass.
func (tv *TripValidator) Validate(raw request_models.TripPlanRequest) (*TripRequest, *NormalizedDates, error) {
	start, err := NormalizeDate(raw.StartDate)
	if err != nil {
		return nil, nil, utils.NewValidationError("Invalid start date", err)
	}
	end, err := NormalizeDate(raw.EndDate)
	if err != nil {
		return nil, nil, utils.NewValidationError("Invalid end date", err)
	}

	req := TripRequest{
		StartingLocation:      strings.TrimSpace(raw.StartingLocation),
		Destination:           strings.TrimSpace(raw.Destination),
		StartDate:             start,
		EndDate:               end,
		Themes:                raw.Themes,
		TravelPace:            strings.ToLower(strings.TrimSpace(raw.TravelPace)),
		WeatherPreferences:    raw.WeatherPreferences,
		Accommodation:         raw.Accommodation,
		Food:                  raw.Food,
		Transport:             raw.Transport,
		Currency:              strings.ToUpper(strings.TrimSpace(raw.Currency)),
		Budget:                raw.Budget,
		Adults:                raw.Adults,
		Children:              raw.Children,
		Infants:               raw.Infants,
		AdditionalPreferences: strings.TrimSpace(raw.AdditionalPreferences),
	}

	if err := tv.validate.Struct(req); err != nil {
		return nil, nil, tv.translate(req, err)
	}

	days, dateList, err := DeriveDuration(start, end, tv.maxDays)
	if err != nil {
		return nil, nil, err
	}

	return &req, &NormalizedDates{Start: start, End: end, Days: days, DateList: dateList}, nil
}

func (tv *TripValidator) translate(req TripRequest, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return utils.NewValidationError("Invalid trip request", err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "maxdays" {
			return tooLongError(tv.maxDays, inclusiveDays(req.StartDate, req.EndDate))
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "gtestart":
		return utils.NewValidationError("End date must be on or after the start date", err)
	case "required":
		return utils.NewValidationError(fmt.Sprintf("%s is required", fe.Field()), err)
	case "currency_code":
		return utils.NewValidationError(fmt.Sprintf("Unsupported currency code %q", req.Currency), err)
	default:
		return utils.NewValidationError(fmt.Sprintf("Invalid value for %s", fe.Field()), err)
	}
}

// NormalizeDate returns the calendar day the user picked, pinned to UTC midnight.
func NormalizeDate(input any) (time.Time, error) {
	switch v := input.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, errors.New("empty date")
		}
		return utils.CalendarDay(v), nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, errors.New("empty date")
		}
		return utils.CalendarDay(*v), nil
	case string:
		return normalizeDateString(v)
	case nil:
		return time.Time{}, errors.New("date is required")
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", input)
	}
}

func normalizeDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}

	if strictDayPattern.MatchString(s) {
		return time.Parse(utils.DayLayout, s)
	}
	if m := isoPrefixPattern.FindStringSubmatch(s); m != nil {
		return time.Parse(utils.DayLayout, m[1])
	}

	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return utils.CalendarDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// DeriveDuration counts both endpoints and lists one YYYY-MM-DD string per day.
func DeriveDuration(start, end time.Time, maxDays int) (int, []string, error) {
	days := inclusiveDays(start, end)
	if days <= 0 {
		return 0, nil, utils.NewValidationError("End date must be on or after the start date", nil)
	}
	if days > maxDays {
		return 0, nil, tooLongError(maxDays, days)
	}
	return days, utils.DaySpan(start, days), nil
}

func inclusiveDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

func tooLongError(maxDays, days int) error {
	return utils.NewValidationError(
		fmt.Sprintf("Trip duration cannot exceed %d days. You selected %d days.", maxDays, days),
		ErrTripTooLong,
	)
}

// SplitDestination reads "City", "City, CC" or "City, Region, Country".
func SplitDestination(destination string) DestinationInfo {
	var parts []string
	for _, p := range strings.Split(destination, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	var info DestinationInfo
	switch len(parts) {
	case 0:
		return info
	case 1:
		info.City = parts[0]
	default:
		info.City = parts[0]
		info.Country = parts[len(parts)-1]
	}

	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.Und)
	if info.City == strings.ToLower(info.City) {
		info.City = caser.String(info.City)
	}
	if len(info.Country) == 2 {
		info.Country = strings.ToUpper(info.Country)
	} else if info.Country == strings.ToLower(info.Country) {
		info.Country = caser.String(info.Country)
	}
	return info
}
