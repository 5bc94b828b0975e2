package models

// All lists every persisted model in dependency order for migrations.
func All() []any {
	return []any{
		&User{},
		&OAuthProfile{},
		&Property{},
		&PropertyAvailability{},
		&PropertyReview{},
		&PropertyBooking{},
		&Homestay{},
		&Booking{},
		&Payment{},
		&Transaction{},
		&Review{},
		&BusOperator{},
		&Bus{},
		&BusSeat{},
		&BusBooking{},
		&Train{},
		&TrainClass{},
		&SupportRequest{},
		&AILog{},
		&TranslationsCache{},
	}
}
