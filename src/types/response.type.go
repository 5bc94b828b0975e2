package types

import "time"

type APIResponseUser struct {
	ID                uint           `json:"id"`
	Name              string         `json:"name"`
	Email             *string        `json:"email"`
	Phone             *string        `json:"phone"`
	Preference        UserPreference `json:"preference"`
	PreferredLanguage Language       `json:"preferred_language"`
	IsVerified        bool           `json:"is_verified"`
	CreatedAt         time.Time      `json:"created_at"`
}

type APIResponseAuth struct {
	User      *APIResponseUser `json:"user"`
	Token     string           `json:"token"`
	Refresh   string           `json:"refresh"`
	IsNewUser *bool            `json:"is_new_user,omitempty"`
}

type APIResponseTokens struct {
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
}

type APIResponseProperty struct {
	ID            uint         `json:"id"`
	Name          string       `json:"name"`
	Slug          string       `json:"slug"`
	Type          PropertyType `json:"type"`
	Location      string       `json:"location"`
	State         string       `json:"state"`
	City          string       `json:"city"`
	Description   string       `json:"description"`
	MaxGuests     uint         `json:"max_guests"`
	Bedrooms      uint         `json:"bedrooms"`
	Bathrooms     uint         `json:"bathrooms"`
	PricePerNight float64      `json:"price_per_night"`
	Rating        float64      `json:"rating"`
	TotalRatings  uint         `json:"total_ratings"`
	RatingCount   int64        `json:"rating_count"`
	InstantBook   bool         `json:"instant_book"`
	VerifiedHost  bool         `json:"verified_host"`
	Amenities     []string     `json:"amenities"`
	Photos        []string     `json:"photos"`
	PhotoCount    uint         `json:"photo_count"`
	HostName      string       `json:"host_name"`
}

type APIResponseAvailability struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	BasePrice   float64 `json:"base_price"`
	MinimumStay uint    `json:"minimum_stay"`
}

type APIResponseReview struct {
	ID                uint      `json:"id"`
	Rating            uint      `json:"rating"`
	Comment           string    `json:"comment"`
	CleanlinessRating uint      `json:"cleanliness_rating"`
	LocationRating    uint      `json:"location_rating"`
	ValueRating       uint      `json:"value_rating"`
	AmenitiesRating   uint      `json:"amenities_rating"`
	Photos            []string  `json:"photos"`
	CreatedAt         time.Time `json:"created_at"`
	UserName          string    `json:"user_name"`
}

type APIResponseBus struct {
	ID             uint      `json:"id"`
	BusNumber      string    `json:"bus_number"`
	BusType        string    `json:"bus_type"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Duration       string    `json:"duration"`
	SeatType       SeatType  `json:"seat_type"`
	TotalSeats     uint      `json:"total_seats"`
	AvailableSeats uint      `json:"available_seats"`
	WindowSeats    uint      `json:"window_seats"`
	BaseFare       float64   `json:"base_fare"`
	Rating         float64   `json:"rating"`
	TotalRatings   uint      `json:"total_ratings"`
	LiveTracking   bool      `json:"live_tracking"`
	Amenities      []string  `json:"amenities"`
	OperatorName   string    `json:"operator_name"`
}

type APIResponseTrain struct {
	ID               uint           `json:"id"`
	Number           string         `json:"number"`
	Name             string         `json:"name"`
	FromStation      string         `json:"from_station"`
	ToStation        string         `json:"to_station"`
	DepartureTime    string         `json:"departure_time"`
	ArrivalTime      string         `json:"arrival_time"`
	Duration         string         `json:"duration"`
	Distance         uint           `json:"distance"`
	RunningDays      string         `json:"running_days"`
	ClassesAvailable TrainClassType `json:"classes_available"`
	BaseFare         float64        `json:"base_fare"`
}

type APIResponseHomestay struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	Country        string   `json:"country"`
	PricePerNight  float64  `json:"price_per_night"`
	TotalRooms     uint     `json:"total_rooms"`
	AvailableRooms uint     `json:"available_rooms"`
	Amenities      []string `json:"amenities"`
	HouseRules     []string `json:"house_rules"`
	Photos         []string `json:"photos"`
	Rating         float64  `json:"rating"`
	HostName       string   `json:"host_name"`
}

type APIResponseBusOperator struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Logo        string  `json:"logo"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	TotalBuses  uint    `json:"total_buses"`
}

type APIResponseSupportRequest struct {
	ID          uint            `json:"id"`
	Subject     string          `json:"subject"`
	Description string          `json:"description"`
	Status      SupportStatus   `json:"status"`
	Priority    SupportPriority `json:"priority"`
	BookingID   *uint           `json:"booking"`
	Attachments []string        `json:"attachments"`
	ResolvedAt  *time.Time      `json:"resolved_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

type APIResponseTranslation struct {
	SourceText     string `json:"source_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
	TranslatedText string `json:"translated_text"`
	UseCount       uint   `json:"use_count"`
}
