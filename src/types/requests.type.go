package types

import "time"

const requiredMsg = "this field is required"

type fieldCheck struct {
	name    string
	present bool
}

func missing(checks ...fieldCheck) map[string]string {
	out := map[string]string{}
	for _, c := range checks {
		if !c.present {
			out[c.name] = requiredMsg
		}
	}
	return out
}

// Listing bodies use pointer fields so the same type serves create, full
// update and partial update. Missing reports fields a full write needs.

type PropertyRequestBody struct {
	Name          *string       `json:"name" binding:"omitempty,min=1,max=200"`
	Type          *PropertyType `json:"type" binding:"omitempty,oneof=cabin houseboat desert_camp villa cottage treehouse"`
	Location      *string       `json:"location" binding:"omitempty,max=255"`
	State         *string       `json:"state" binding:"omitempty,max=100"`
	City          *string       `json:"city" binding:"omitempty,max=100"`
	Description   *string       `json:"description"`
	MaxGuests     *uint         `json:"max_guests" binding:"omitempty,gte=1"`
	Bedrooms      *uint         `json:"bedrooms"`
	Bathrooms     *uint         `json:"bathrooms"`
	PricePerNight *float64      `json:"price_per_night" binding:"omitempty,gte=0"`
	InstantBook   *bool         `json:"instant_book"`
	Amenities     []string      `json:"amenities"`
	Photos        []string      `json:"photos"`
	IsActive      *bool         `json:"is_active"`
}

func (b *PropertyRequestBody) Missing() map[string]string {
	return missing(
		fieldCheck{"name", b.Name != nil},
		fieldCheck{"type", b.Type != nil},
		fieldCheck{"location", b.Location != nil},
		fieldCheck{"state", b.State != nil},
		fieldCheck{"city", b.City != nil},
		fieldCheck{"max_guests", b.MaxGuests != nil},
		fieldCheck{"price_per_night", b.PricePerNight != nil},
	)
}

type AvailabilityRequestBody struct {
	Date        string   `json:"date" binding:"required,isodate"`
	IsAvailable *bool    `json:"is_available"`
	BasePrice   *float64 `json:"base_price" binding:"required,gte=0"`
	MinimumStay *uint    `json:"minimum_stay" binding:"omitempty,gte=1"`
}

type ReviewRequestBody struct {
	Rating            *uint    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment           *string  `json:"comment"`
	CleanlinessRating *uint    `json:"cleanliness_rating" binding:"omitempty,min=1,max=5"`
	LocationRating    *uint    `json:"location_rating" binding:"omitempty,min=1,max=5"`
	ValueRating       *uint    `json:"value_rating" binding:"omitempty,min=1,max=5"`
	AmenitiesRating   *uint    `json:"amenities_rating" binding:"omitempty,min=1,max=5"`
	Photos            []string `json:"photos"`
}

func (b *ReviewRequestBody) Missing() map[string]string {
	return missing(
		fieldCheck{"rating", b.Rating != nil},
		fieldCheck{"comment", b.Comment != nil},
		fieldCheck{"cleanliness_rating", b.CleanlinessRating != nil},
		fieldCheck{"location_rating", b.LocationRating != nil},
		fieldCheck{"value_rating", b.ValueRating != nil},
		fieldCheck{"amenities_rating", b.AmenitiesRating != nil},
	)
}

type BusRequestBody struct {
	OperatorID     *uint      `json:"operator" binding:"omitempty,gte=1"`
	BusNumber      *string    `json:"bus_number" binding:"omitempty,min=1,max=20"`
	BusType        *string    `json:"bus_type" binding:"omitempty,max=100"`
	FromCity       *string    `json:"from_city" binding:"omitempty,max=100"`
	ToCity         *string    `json:"to_city" binding:"omitempty,max=100"`
	DepartureTime  *time.Time `json:"departure_time"`
	ArrivalTime    *time.Time `json:"arrival_time"`
	Duration       *string    `json:"duration" binding:"omitempty,max=20"`
	SeatType       *SeatType  `json:"seat_type" binding:"omitempty,oneof=seater sleeper ac_seater ac_sleeper"`
	TotalSeats     *uint      `json:"total_seats"`
	AvailableSeats *uint      `json:"available_seats"`
	WindowSeats    *uint      `json:"window_seats"`
	BaseFare       *float64   `json:"base_fare" binding:"omitempty,gte=0"`
	LiveTracking   *bool      `json:"live_tracking"`
	Amenities      []string   `json:"amenities"`
}

func (b *BusRequestBody) Missing() map[string]string {
	return missing(
		fieldCheck{"operator", b.OperatorID != nil},
		fieldCheck{"bus_number", b.BusNumber != nil},
		fieldCheck{"bus_type", b.BusType != nil},
		fieldCheck{"from_city", b.FromCity != nil},
		fieldCheck{"to_city", b.ToCity != nil},
		fieldCheck{"departure_time", b.DepartureTime != nil},
		fieldCheck{"arrival_time", b.ArrivalTime != nil},
		fieldCheck{"duration", b.Duration != nil},
		fieldCheck{"seat_type", b.SeatType != nil},
		fieldCheck{"total_seats", b.TotalSeats != nil},
		fieldCheck{"available_seats", b.AvailableSeats != nil},
		fieldCheck{"base_fare", b.BaseFare != nil},
	)
}

type TrainRequestBody struct {
	Number           *string         `json:"number" binding:"omitempty,min=1,max=10"`
	Name             *string         `json:"name" binding:"omitempty,max=100"`
	FromStation      *string         `json:"from_station" binding:"omitempty,max=100"`
	ToStation        *string         `json:"to_station" binding:"omitempty,max=100"`
	DepartureTime    *string         `json:"departure_time" binding:"omitempty,clocktime"`
	ArrivalTime      *string         `json:"arrival_time" binding:"omitempty,clocktime"`
	Duration         *string         `json:"duration" binding:"omitempty,max=20"`
	Distance         *uint           `json:"distance"`
	RunningDays      *string         `json:"running_days" binding:"omitempty,max=50"`
	ClassesAvailable *TrainClassType `json:"classes_available" binding:"omitempty,oneof=ALL SL 3A 2A 1A CC"`
	BaseFare         *float64        `json:"base_fare" binding:"omitempty,gte=0"`
}

func (b *TrainRequestBody) Missing() map[string]string {
	return missing(
		fieldCheck{"number", b.Number != nil},
		fieldCheck{"name", b.Name != nil},
		fieldCheck{"from_station", b.FromStation != nil},
		fieldCheck{"to_station", b.ToStation != nil},
		fieldCheck{"departure_time", b.DepartureTime != nil},
		fieldCheck{"arrival_time", b.ArrivalTime != nil},
		fieldCheck{"duration", b.Duration != nil},
		fieldCheck{"distance", b.Distance != nil},
		fieldCheck{"running_days", b.RunningDays != nil},
		fieldCheck{"base_fare", b.BaseFare != nil},
	)
}

type HomestayRequestBody struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string  `json:"description"`
	Address        *string  `json:"address"`
	City           *string  `json:"city" binding:"omitempty,max=100"`
	Country        *string  `json:"country" binding:"omitempty,max=100"`
	PricePerNight  *float64 `json:"price_per_night" binding:"omitempty,gte=0"`
	TotalRooms     *uint    `json:"total_rooms" binding:"omitempty,gte=1"`
	AvailableRooms *uint    `json:"available_rooms"`
	Amenities      []string `json:"amenities"`
	HouseRules     []string `json:"house_rules"`
	Photos         []string `json:"photos"`
	IsActive       *bool    `json:"is_active"`
}

func (b *HomestayRequestBody) Missing() map[string]string {
	return missing(
		fieldCheck{"name", b.Name != nil},
		fieldCheck{"description", b.Description != nil},
		fieldCheck{"address", b.Address != nil},
		fieldCheck{"city", b.City != nil},
		fieldCheck{"country", b.Country != nil},
		fieldCheck{"price_per_night", b.PricePerNight != nil},
		fieldCheck{"total_rooms", b.TotalRooms != nil},
		fieldCheck{"available_rooms", b.AvailableRooms != nil},
	)
}

type BusOperatorRequestBody struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Logo        *string  `json:"logo" binding:"omitempty,url"`
	Description *string  `json:"description"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	TotalBuses  *uint    `json:"total_buses"`
}

func (b *BusOperatorRequestBody) Missing() map[string]string {
	return missing(fieldCheck{"name", b.Name != nil})
}

type SupportRequestBody struct {
	Subject     string          `json:"subject" binding:"required,max=200"`
	Description string          `json:"description" binding:"required"`
	Priority    SupportPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	BookingID   *uint           `json:"booking"`
	Attachments []string        `json:"attachments"`
}

type TranslationRequestBody struct {
	SourceText     string `json:"source_text" binding:"required"`
	SourceLanguage string `json:"source_language" binding:"required,max=10"`
	TargetLanguage string `json:"target_language" binding:"required,max=10"`
	TranslatedText string `json:"translated_text" binding:"required"`
}

type TranslationQuery struct {
	Text   string `form:"text" binding:"required"`
	Source string `form:"source" binding:"required"`
	Target string `form:"target" binding:"required"`
}

type AILogRequestBody struct {
	SessionID      string         `json:"session_id" binding:"required,max=100"`
	Query          string         `json:"query" binding:"required"`
	Response       string         `json:"response" binding:"required"`
	Context        map[string]any `json:"context"`
	Feedback       *string        `json:"feedback"`
	ProcessingTime float64        `json:"processing_time" binding:"gte=0"`
}

type GoogleAuthRequestBody struct {
	Credential string `json:"credential" binding:"required"`
}

type FacebookAuthRequestBody struct {
	AccessToken string `json:"access_token" binding:"required"`
}

type OAuthCallbackRequestBody struct {
	Code        string `json:"code" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	RedirectURI string `json:"redirect_uri" binding:"required"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequestBody struct {
	Name       string  `json:"name" binding:"required,max=100"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,max=72"`
	Phone      *string `json:"phone" binding:"omitempty,max=15"`
	Newsletter bool    `json:"newsletter"`
}

type RefreshRequestBody struct {
	Refresh string `json:"refresh" binding:"required"`
}
