package common

import (
	"context"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *CommonSuite) TestPropertyOwnership() {
	body := &types.PropertyRequestBody{
		Name:          ptr("Lake House"),
		Type:          ptr(types.PROPERTY_COTTAGE),
		Location:      ptr("Mall Road"),
		State:         ptr("Uttarakhand"),
		City:          ptr("Nainital"),
		MaxGuests:     ptr(uint(3)),
		PricePerNight: ptr(2800.0),
	}
	created, err := CreateProperty(s.DB, &s.Host, body)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Host", created.HostName)
	assert.NotEmpty(s.T(), created.Slug)

	_, err = UpdateProperty(s.DB, created.ID, s.Guest.ID, &types.PropertyRequestBody{Name: ptr("Mine now")}, true)
	assert.Equal(s.T(), types.ERR_FORBIDDEN, types.AsAppError(err).Kind)

	updated, err := UpdateProperty(s.DB, created.ID, s.Host.ID, &types.PropertyRequestBody{PricePerNight: ptr(3100.0)}, true)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 3100.0, updated.PricePerNight)
	assert.Equal(s.T(), "Lake House", updated.Name)

	_, err = UpdateProperty(s.DB, created.ID, s.Host.ID, &types.PropertyRequestBody{Name: ptr("Only a name")}, false)
	assert.Equal(s.T(), types.ERR_VALIDATION, types.AsAppError(err).Kind)

	assert.Equal(s.T(), types.ERR_NOT_FOUND, types.AsAppError(DeleteProperty(s.DB, 9999, s.Host.ID)).Kind)
	require.NoError(s.T(), DeleteProperty(s.DB, created.ID, s.Host.ID))
}

func (s *CommonSuite) TestOperatorWithBusesCannotBeDeleted() {
	op, err := CreateBusOperator(s.DB, &types.BusOperatorRequestBody{Name: ptr("Konkan Travels")})
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.DB.Create(&models.Bus{OperatorID: op.ID, BusNumber: "MH-01", FromCity: "Pune", ToCity: "Goa"}).Error)

	err = DeleteBusOperator(s.DB, op.ID)
	assert.Equal(s.T(), types.ERR_CONFLICT, types.AsAppError(err).Kind)

	require.NoError(s.T(), s.DB.Where("operator_id = ?", op.ID).Delete(&models.Bus{}).Error)
	require.NoError(s.T(), DeleteBusOperator(s.DB, op.ID))
}

func (s *CommonSuite) TestUpdateMissingSlugs() {
	p := s.property("Desert Camp Deluxe", "Jaisalmer", 4000, true)
	require.NoError(s.T(), s.DB.Model(&p).Update("slug", "").Error)

	assert.Equal(s.T(), 1, UpdateMissingSlugs(s.DB))

	var stored models.Property
	require.NoError(s.T(), s.DB.First(&stored, p.ID).Error)
	assert.Equal(s.T(), PropertySlug(p.Name, p.ID), stored.Slug)
	assert.Equal(s.T(), 0, UpdateMissingSlugs(s.DB))
}

func (s *CommonSuite) TestTranslationCache() {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	body := &types.TranslationRequestBody{SourceText: "Thank you", SourceLanguage: "en", TargetLanguage: "mr", TranslatedText: "धन्यवाद"}
	key := translationKey(body.SourceText, body.SourceLanguage, body.TargetLanguage)

	mock.ExpectDel(key).SetVal(0)
	stored, err := StoreTranslation(ctx, s.DB, rdb, body)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), uint(1), stored.UseCount)

	mock.ExpectDel(key).SetVal(0)
	body.TranslatedText = "आभारी आहे"
	_, err = StoreTranslation(ctx, s.DB, rdb, body)
	require.NoError(s.T(), err)

	var count int64
	s.DB.Model(&models.TranslationsCache{}).Count(&count)
	assert.Equal(s.T(), int64(1), count)

	q := &types.TranslationQuery{Text: "Thank you", Source: "en", Target: "mr"}
	mock.ExpectGet(key).RedisNil()
	mock.Regexp().ExpectSet(key, `.*`, translationCacheTTL).SetVal("OK")
	out, err := LookupTranslation(ctx, s.DB, rdb, q)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "आभारी आहे", out.TranslatedText)
	assert.Equal(s.T(), uint(2), out.UseCount)
	assert.NoError(s.T(), mock.ExpectationsWereMet())
}

func (s *CommonSuite) TestSupportRequestBookingMustBelongToUser() {
	homestay := models.Homestay{HostID: s.Host.ID, Name: "Riverside", City: "Coorg", IsActive: true}
	require.NoError(s.T(), s.DB.Omit("Host").Create(&homestay).Error)
	booking := models.Booking{UserID: s.Host.ID, HomestayID: homestay.ID, Status: types.BOOKING_PENDING}
	require.NoError(s.T(), s.DB.Omit("Homestay", "User").Create(&booking).Error)

	_, err := CreateSupportRequest(s.DB, s.Guest.ID, &types.SupportRequestBody{Subject: "Help", Description: "x", BookingID: &booking.ID})
	assert.Equal(s.T(), types.ERR_VALIDATION, types.AsAppError(err).Kind)

	row, err := CreateSupportRequest(s.DB, s.Host.ID, &types.SupportRequestBody{Subject: "Help", Description: "x", BookingID: &booking.ID})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), types.PRIORITY_MEDIUM, row.Priority)
}
