package common

import (
	"time"
	"travelhub/src/config"
	"travelhub/src/models"
	"travelhub/src/types"

	"gorm.io/datatypes"
)

func stringList(v datatypes.JSONSlice[string]) []string {
	if v == nil {
		return []string{}
	}
	return []string(v)
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(config.DATE_FORMAT)
}

func SerializeUser(u *models.User) *types.APIResponseUser {
	if u == nil {
		return nil
	}
	return &types.APIResponseUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		Preference:        u.Preference,
		PreferredLanguage: u.PreferredLanguage,
		IsVerified:        u.IsVerified,
		CreatedAt:         u.CreatedAt,
	}
}

func SerializeProperty(p *models.Property, ratingCount int64) types.APIResponseProperty {
	return types.APIResponseProperty{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Type:          p.Type,
		Location:      p.Location,
		State:         p.State,
		City:          p.City,
		Description:   p.Description,
		MaxGuests:     p.MaxGuests,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		PricePerNight: p.PricePerNight,
		Rating:        p.Rating,
		TotalRatings:  p.TotalRatings,
		RatingCount:   ratingCount,
		InstantBook:   p.InstantBook,
		VerifiedHost:  p.VerifiedHost,
		Amenities:     stringList(p.Amenities),
		Photos:        stringList(p.Photos),
		PhotoCount:    p.PhotoCount,
		HostName:      p.Host.DisplayName(),
	}
}

func SerializeAvailability(a *models.PropertyAvailability) types.APIResponseAvailability {
	return types.APIResponseAvailability{
		Date:        FormatDate(a.Date),
		IsAvailable: a.IsAvailable,
		BasePrice:   a.BasePrice,
		MinimumStay: a.MinimumStay,
	}
}

func SerializeReview(r *models.PropertyReview) types.APIResponseReview {
	return types.APIResponseReview{
		ID:                r.ID,
		Rating:            r.Rating,
		Comment:           r.Comment,
		CleanlinessRating: r.CleanlinessRating,
		LocationRating:    r.LocationRating,
		ValueRating:       r.ValueRating,
		AmenitiesRating:   r.AmenitiesRating,
		Photos:            stringList(r.Photos),
		CreatedAt:         r.CreatedAt,
		UserName:          r.User.DisplayName(),
	}
}

func SerializeBus(b *models.Bus) types.APIResponseBus {
	operatorName := ""
	if b.Operator != nil {
		operatorName = b.Operator.Name
	}
	return types.APIResponseBus{
		ID:             b.ID,
		BusNumber:      b.BusNumber,
		BusType:        b.BusType,
		FromCity:       b.FromCity,
		ToCity:         b.ToCity,
		DepartureTime:  b.DepartureTime,
		ArrivalTime:    b.ArrivalTime,
		Duration:       b.Duration,
		SeatType:       b.SeatType,
		TotalSeats:     b.TotalSeats,
		AvailableSeats: b.AvailableSeats,
		WindowSeats:    b.WindowSeats,
		BaseFare:       b.BaseFare,
		Rating:         b.Rating,
		TotalRatings:   b.TotalRatings,
		LiveTracking:   b.LiveTracking,
		Amenities:      stringList(b.Amenities),
		OperatorName:   operatorName,
	}
}

func SerializeTrain(t *models.Train) types.APIResponseTrain {
	return types.APIResponseTrain{
		ID:               t.ID,
		Number:           t.Number,
		Name:             t.Name,
		FromStation:      t.FromStation,
		ToStation:        t.ToStation,
		DepartureTime:    t.DepartureTime.String(),
		ArrivalTime:      t.ArrivalTime.String(),
		Duration:         t.Duration,
		Distance:         t.Distance,
		RunningDays:      t.RunningDays,
		ClassesAvailable: t.ClassesAvailable,
		BaseFare:         t.BaseFare,
	}
}

func SerializeHomestay(h *models.Homestay) types.APIResponseHomestay {
	return types.APIResponseHomestay{
		ID:             h.ID,
		Name:           h.Name,
		Description:    h.Description,
		Address:        h.Address,
		City:           h.City,
		Country:        h.Country,
		PricePerNight:  h.PricePerNight,
		TotalRooms:     h.TotalRooms,
		AvailableRooms: h.AvailableRooms,
		Amenities:      stringList(h.Amenities),
		HouseRules:     stringList(h.HouseRules),
		Photos:         stringList(h.Photos),
		Rating:         h.Rating,
		HostName:       h.Host.DisplayName(),
	}
}

func SerializeBusOperator(o *models.BusOperator) types.APIResponseBusOperator {
	return types.APIResponseBusOperator{
		ID:          o.ID,
		Name:        o.Name,
		Logo:        o.Logo,
		Description: o.Description,
		Rating:      o.Rating,
		TotalBuses:  o.TotalBuses,
	}
}

func SerializeSupportRequest(s *models.SupportRequest) types.APIResponseSupportRequest {
	return types.APIResponseSupportRequest{
		ID:          s.ID,
		Subject:     s.Subject,
		Description: s.Description,
		Status:      s.Status,
		Priority:    s.Priority,
		BookingID:   s.BookingID,
		Attachments: stringList(s.Attachments),
		ResolvedAt:  s.ResolvedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func SerializeTranslation(t *models.TranslationsCache) types.APIResponseTranslation {
	return types.APIResponseTranslation{
		SourceText:     t.SourceText,
		SourceLanguage: t.SourceLanguage,
		TargetLanguage: t.TargetLanguage,
		TranslatedText: t.TranslatedText,
		UseCount:       t.UseCount,
	}
}
