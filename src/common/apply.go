package common

import (
	"fmt"
	"time"
	"travelhub/src/config"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/gosimple/slug"
	"gorm.io/datatypes"
)

// RequireFields fails a create or full update that leaves required fields unset.
func RequireFields(missing map[string]string) error {
	if len(missing) > 0 {
		return types.NewValidationError(missing)
	}
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func PropertySlug(name string, id uint) string {
	return fmt.Sprintf("%s-%d", slug.Make(name), id)
}

func ApplyPropertyBody(p *models.Property, b *types.PropertyRequestBody) {
	set(&p.Name, b.Name)
	set(&p.Type, b.Type)
	set(&p.Location, b.Location)
	set(&p.State, b.State)
	set(&p.City, b.City)
	set(&p.Description, b.Description)
	set(&p.MaxGuests, b.MaxGuests)
	set(&p.Bedrooms, b.Bedrooms)
	set(&p.Bathrooms, b.Bathrooms)
	set(&p.PricePerNight, b.PricePerNight)
	set(&p.InstantBook, b.InstantBook)
	set(&p.IsActive, b.IsActive)
	if b.Amenities != nil {
		p.Amenities = datatypes.JSONSlice[string](b.Amenities)
	}
	if b.Photos != nil {
		p.Photos = datatypes.JSONSlice[string](b.Photos)
		p.PhotoCount = uint(len(b.Photos))
	}
}

func ApplyHomestayBody(h *models.Homestay, b *types.HomestayRequestBody) error {
	set(&h.Name, b.Name)
	set(&h.Description, b.Description)
	set(&h.Address, b.Address)
	set(&h.City, b.City)
	set(&h.Country, b.Country)
	set(&h.PricePerNight, b.PricePerNight)
	set(&h.TotalRooms, b.TotalRooms)
	set(&h.AvailableRooms, b.AvailableRooms)
	set(&h.IsActive, b.IsActive)
	if b.Amenities != nil {
		h.Amenities = datatypes.JSONSlice[string](b.Amenities)
	}
	if b.HouseRules != nil {
		h.HouseRules = datatypes.JSONSlice[string](b.HouseRules)
	}
	if b.Photos != nil {
		h.Photos = datatypes.JSONSlice[string](b.Photos)
	}
	if h.AvailableRooms > h.TotalRooms {
		return types.NewFieldError("available_rooms", "cannot exceed total_rooms")
	}
	return nil
}

func ApplyBusBody(bus *models.Bus, b *types.BusRequestBody) error {
	set(&bus.OperatorID, b.OperatorID)
	set(&bus.BusNumber, b.BusNumber)
	set(&bus.BusType, b.BusType)
	set(&bus.FromCity, b.FromCity)
	set(&bus.ToCity, b.ToCity)
	set(&bus.DepartureTime, b.DepartureTime)
	set(&bus.ArrivalTime, b.ArrivalTime)
	set(&bus.Duration, b.Duration)
	set(&bus.SeatType, b.SeatType)
	set(&bus.TotalSeats, b.TotalSeats)
	set(&bus.AvailableSeats, b.AvailableSeats)
	set(&bus.WindowSeats, b.WindowSeats)
	set(&bus.BaseFare, b.BaseFare)
	set(&bus.LiveTracking, b.LiveTracking)
	if b.Amenities != nil {
		bus.Amenities = datatypes.JSONSlice[string](b.Amenities)
	}
	bus.DepartureTime = bus.DepartureTime.UTC()
	bus.ArrivalTime = bus.ArrivalTime.UTC()
	fields := map[string]string{}
	if !bus.ArrivalTime.After(bus.DepartureTime) {
		fields["arrival_time"] = "must be after departure_time"
	}
	if bus.AvailableSeats > bus.TotalSeats {
		fields["available_seats"] = "cannot exceed total_seats"
	}
	if len(fields) > 0 {
		return types.NewValidationError(fields)
	}
	return nil
}

func parseClockTime(v string) (datatypes.Time, error) {
	t, err := time.Parse(config.TIME_FORMAT, v)
	if err != nil {
		t, err = time.Parse("15:04", v)
		if err != nil {
			return datatypes.Time(0), err
		}
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

func ApplyTrainBody(t *models.Train, b *types.TrainRequestBody) error {
	set(&t.Number, b.Number)
	set(&t.Name, b.Name)
	set(&t.FromStation, b.FromStation)
	set(&t.ToStation, b.ToStation)
	set(&t.Duration, b.Duration)
	set(&t.Distance, b.Distance)
	set(&t.RunningDays, b.RunningDays)
	set(&t.ClassesAvailable, b.ClassesAvailable)
	set(&t.BaseFare, b.BaseFare)
	if t.ClassesAvailable == "" {
		t.ClassesAvailable = types.CLASS_ALL
	}
	fields := map[string]string{}
	if b.DepartureTime != nil {
		v, err := parseClockTime(*b.DepartureTime)
		if err != nil {
			fields["departure_time"] = "must be a time in HH:MM[:SS] format"
		}
		t.DepartureTime = v
	}
	if b.ArrivalTime != nil {
		v, err := parseClockTime(*b.ArrivalTime)
		if err != nil {
			fields["arrival_time"] = "must be a time in HH:MM[:SS] format"
		}
		t.ArrivalTime = v
	}
	if len(fields) > 0 {
		return types.NewValidationError(fields)
	}
	return nil
}

func ApplyBusOperatorBody(o *models.BusOperator, b *types.BusOperatorRequestBody) {
	set(&o.Name, b.Name)
	set(&o.Logo, b.Logo)
	set(&o.Description, b.Description)
	set(&o.Rating, b.Rating)
	set(&o.TotalBuses, b.TotalBuses)
}

func ApplyReviewBody(r *models.PropertyReview, b *types.ReviewRequestBody) {
	set(&r.Rating, b.Rating)
	set(&r.Comment, b.Comment)
	set(&r.CleanlinessRating, b.CleanlinessRating)
	set(&r.LocationRating, b.LocationRating)
	set(&r.ValueRating, b.ValueRating)
	set(&r.AmenitiesRating, b.AmenitiesRating)
	if b.Photos != nil {
		r.Photos = datatypes.JSONSlice[string](b.Photos)
	}
}
