package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"travelhub/src/common"
	"travelhub/src/config"
	"travelhub/src/db"
	"travelhub/src/db/dbtest"
	"travelhub/src/lib"
	"travelhub/src/models"
	"travelhub/src/types"
	"travelhub/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB     *gorm.DB
	Router *gin.Engine
	Host   *models.User
}

func testConfig() *config.Config {
	return &config.Config{
		Env:  "test",
		Port: "8000",
		Providers: map[string]config.OAuthProvider{
			config.PROVIDER_GOOGLE: {ClientID: "google-client"},
		},
		JWT: config.JWTConfig{
			Secret:        "secret",
			RefreshSecret: "refresh-secret",
			AccessTTL:     60,
			RefreshTTL:    1,
			Issuer:        "travelhub",
		},
		Realtime: config.RealtimeConfig{Channel: "real_time_updates", SnapshotLimit: 50, SendBuffer: 16},
	}
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Unsetenv("REDIS_HOST")
	cfg := config.Set(testConfig())
	utils.SetTokenIssuer(utils.NewTokenIssuer(cfg.JWT, nil))
	lib.RegisterMetrics()
	common.RegisterValidators()

	s.DB = dbtest.NewSQLiteDB(models.All()...)
	db.NewDB(s.DB)

	s.Router = setupRouter()
	s.Router = maintenanceModeMiddleware(s.Router)
	apiRoutes(s.Router)

	email := "host@example.com"
	s.Host = &models.User{Name: "Host", Email: &email, Preference: types.PREFERENCE_PROVIDER, IsVerified: true}
	if err := s.DB.Create(s.Host).Error; err != nil {
		log.Fatalf("Could not create host due to error: %s\n", err.Error())
	}
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func (s *TestSuite) request(method string, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = strings.NewReader(string(raw))
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) register(email string) string {
	w := s.request("POST", "/api/auth/register/", map[string]any{
		"name":     "Traveller",
		"email":    email,
		"password": "correct horse",
	}, "")
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	return gjson.Get(w.Body.String(), "token").String()
}

func (s *TestSuite) hostToken() string {
	tokens, err := utils.GetTokenIssuer().Issue(s.T().Context(), s.Host)
	require.NoError(s.T(), err)
	return tokens.Token
}

func (s *TestSuite) seedProperty(name string, city string, price float64, active bool) *models.Property {
	prop := &models.Property{
		HostID:        s.Host.ID,
		Name:          name,
		Type:          types.PROPERTY_VILLA,
		City:          city,
		State:         "Somewhere",
		MaxGuests:     4,
		PricePerNight: price,
		IsActive:      active,
	}
	require.NoError(s.T(), s.DB.Create(prop).Error)
	if !active {
		require.NoError(s.T(), s.DB.Model(prop).Update("is_active", false).Error)
	}
	return prop
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *TestSuite) TestPingRoute() {
	w := s.request("GET", "/", nil, "")
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMetricsRoute() {
	s.request("GET", "/", nil, "")
	w := s.request("GET", "/metrics", nil, "")
	assert.Equal(s.T(), 200, w.Code)
	assert.Contains(s.T(), w.Body.String(), "travelhub_http_requests_total")
}

func (s *TestSuite) TestSecureHeaders() {
	w := s.request("GET", "/", nil, "")
	assert.Equal(s.T(), "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(s.T(), "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func (s *TestSuite) TestMaintenanceMode() {
	s.T().Setenv("MAINTENANCE_MODE", "true")
	w := s.request("GET", "/api/properties/", nil, "")
	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestRegisterLoginFlow() {
	token := s.register("Flow@Example.com")
	assert.NotEmpty(s.T(), token)

	s.Run("Should log in with the lowercased email", func() {
		w := s.request("POST", "/api/auth/login/", map[string]any{"email": "flow@example.com", "password": "correct horse"}, "")
		assert.Equal(s.T(), 200, w.Code)
		body := w.Body.String()
		assert.Equal(s.T(), "flow@example.com", gjson.Get(body, "user.email").String())
		assert.NotEmpty(s.T(), gjson.Get(body, "refresh").String())
	})

	s.Run("Should reject a wrong password with 401", func() {
		w := s.request("POST", "/api/auth/login/", map[string]any{"email": "flow@example.com", "password": "nope"}, "")
		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should return 404 for an unknown email", func() {
		w := s.request("POST", "/api/auth/login/", map[string]any{"email": "nobody@example.com", "password": "x"}, "")
		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Should reject a duplicate registration", func() {
		w := s.request("POST", "/api/auth/register/", map[string]any{"name": "Again", "email": "flow@example.com", "password": "x"}, "")
		assert.Equal(s.T(), 400, w.Code)
		assert.Contains(s.T(), gjson.Get(w.Body.String(), "error").String(), "already exists")
	})

	s.Run("Should return the current user", func() {
		w := s.request("GET", "/api/auth/me/", nil, token)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "traveller", gjson.Get(w.Body.String(), "user.preference").String())
	})
}

func (s *TestSuite) TestRegisterValidation() {
	w := s.request("POST", "/api/auth/register/", map[string]any{"email": "not-an-email"}, "")
	assert.Equal(s.T(), 400, w.Code)
	fields := gjson.Get(w.Body.String(), "fields")
	assert.Equal(s.T(), "must be a valid email address", fields.Get("email").String())
	assert.Equal(s.T(), "this field is required", fields.Get("password").String())

	w = s.request("POST", "/api/auth/register/", map[string]any{
		"name":     "Long",
		"email":    "long@example.com",
		"password": strings.Repeat("x", 80),
	}, "")
	assert.Equal(s.T(), 400, w.Code)
	assert.Equal(s.T(), "must be at most 72", gjson.Get(w.Body.String(), "fields.password").String())
}

func (s *TestSuite) TestOAuthCallback() {
	s.Run("Should list missing fields", func() {
		w := s.request("POST", "/api/auth/oauth/callback/", map[string]any{"provider": "google"}, "")
		assert.Equal(s.T(), 400, w.Code)
		fields := gjson.Get(w.Body.String(), "fields")
		assert.True(s.T(), fields.Get("code").Exists())
		assert.True(s.T(), fields.Get("redirect_uri").Exists())
	})

	s.Run("Should reject an unsupported provider", func() {
		w := s.request("POST", "/api/auth/oauth/callback/", map[string]any{
			"provider":     "myspace",
			"code":         "abc",
			"redirect_uri": "http://localhost:3000/callback",
		}, "")
		assert.Equal(s.T(), 400, w.Code)
		assert.Contains(s.T(), gjson.Get(w.Body.String(), "error").String(), "myspace")
	})
}

func (s *TestSuite) TestUnauthorized() {
	w := s.request("POST", "/api/properties/", map[string]any{"name": "x"}, "")
	assert.Equal(s.T(), 401, w.Code)

	w = s.request("GET", "/api/support-requests/", nil, "garbage")
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestPropertyFilters() {
	inBand := s.seedProperty("Beach Villa", "Varkala", 2500, true)
	upper := s.seedProperty("Cliff Villa", "North Varkala", 4500, true)
	s.seedProperty("Hidden Villa", "Varkala", 3000, false)
	s.seedProperty("Palace", "Varkala", 6000, true)
	s.seedProperty("Hill Cabin", "Manali", 3000, true)

	q := url.Values{}
	q.Set("city", "varkala")
	q.Set("min_price", "1000")
	q.Set("max_price", "5000")
	w := s.request("GET", "/api/properties/?"+q.Encode(), nil, "")
	require.Equal(s.T(), 200, w.Code)

	body := gjson.Parse(w.Body.String())
	require.True(s.T(), body.IsArray())
	ids := []uint{}
	for _, item := range body.Array() {
		ids = append(ids, uint(item.Get("id").Uint()))
		assert.True(s.T(), item.Get("is_active").Bool())
	}
	assert.ElementsMatch(s.T(), []uint{inBand.ID, upper.ID}, ids)

	s.Run("Should hide inactive properties from retrieve", func() {
		hidden := s.seedProperty("Closed Villa", "Goa", 2000, false)
		w := s.request("GET", "/api/properties/"+itoa(hidden.ID)+"/", nil, "")
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestProviderOnlyWrites() {
	token := s.register("rider@example.com")

	w := s.request("POST", "/api/bus-operators/", map[string]any{"name": "Night Rider"}, token)
	assert.Equal(s.T(), 403, w.Code)

	w = s.request("POST", "/api/bus-operators/", map[string]any{"name": "Night Rider"}, s.hostToken())
	assert.Equal(s.T(), 201, w.Code)
	assert.Equal(s.T(), "Night Rider", gjson.Get(w.Body.String(), "name").String())
}

func (s *TestSuite) TestReviews() {
	prop := s.seedProperty("Review Villa", "Goa", 3200, true)
	token := s.register("critic@example.com")
	path := "/api/properties/" + itoa(prop.ID) + "/reviews/"
	review := map[string]any{
		"rating":             4,
		"comment":            "Lovely stay",
		"cleanliness_rating": 5,
		"location_rating":    4,
		"value_rating":       4,
		"amenities_rating":   3,
	}

	w := s.request("POST", path, review, token)
	require.Equal(s.T(), 201, w.Code, w.Body.String())

	s.Run("Should reject a second review", func() {
		w := s.request("POST", path, review, token)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should refuse a review from the host", func() {
		w := s.request("POST", path, review, s.hostToken())
		assert.Equal(s.T(), 403, w.Code)
	})

	s.Run("Should refresh the property rating", func() {
		w := s.request("GET", "/api/properties/"+itoa(prop.ID)+"/", nil, "")
		require.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), 4.0, gjson.Get(w.Body.String(), "rating").Float())
		assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "total_ratings").Int())
	})
}

func (s *TestSuite) TestTranslations() {
	token := s.register("linguist@example.com")
	lookup := "/api/translations/?text=Hello&source=en&target=hi"

	w := s.request("GET", lookup, nil, "")
	assert.Equal(s.T(), 404, w.Code)

	w = s.request("POST", "/api/translations/", map[string]any{
		"source_text":     "Hello",
		"source_language": "en",
		"target_language": "hi",
		"translated_text": "नमस्ते",
	}, token)
	require.Equal(s.T(), 201, w.Code, w.Body.String())

	w = s.request("GET", lookup, nil, "")
	require.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "नमस्ते", gjson.Get(w.Body.String(), "translated_text").String())
	assert.Equal(s.T(), int64(2), gjson.Get(w.Body.String(), "use_count").Int())

	s.Run("Should require every query parameter", func() {
		w := s.request("GET", "/api/translations/?text=Hello", nil, "")
		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestSupportRequests() {
	token := s.register("help@example.com")

	w := s.request("POST", "/api/support-requests/", map[string]any{"subject": "Refund", "description": "Cancelled trip"}, token)
	require.Equal(s.T(), 201, w.Code, w.Body.String())
	assert.Equal(s.T(), "medium", gjson.Get(w.Body.String(), "priority").String())

	w = s.request("POST", "/api/support-requests/", map[string]any{"subject": "Refund", "description": "x", "booking": 999}, token)
	assert.Equal(s.T(), 400, w.Code)

	w = s.request("GET", "/api/support-requests/", nil, token)
	require.Equal(s.T(), 200, w.Code)
	assert.Len(s.T(), gjson.Parse(w.Body.String()).Array(), 1)
}

func (s *TestSuite) TestAILogsAllowAnonymous() {
	w := s.request("POST", "/api/ai-logs/", map[string]any{
		"session_id":      "session-1",
		"query":           "best beaches in goa",
		"response":        "Palolem and Agonda",
		"processing_time": 0.42,
	}, "")
	require.Equal(s.T(), 201, w.Code, w.Body.String())
	assert.Equal(s.T(), "session-1", gjson.Get(w.Body.String(), "session_id").String())
}

func TestSuiteRun(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
