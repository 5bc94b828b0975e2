package realtime

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"travelhub/src/config"
	"travelhub/src/db/dbtest"
	"travelhub/src/models"
	"travelhub/src/types"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type RealtimeSuite struct {
	suite.Suite
	DB     *gorm.DB
	Hub    *Hub
	Server *httptest.Server
	cancel context.CancelFunc
}

func (s *RealtimeSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.DB = dbtest.NewSQLiteDB(models.All()...)
	host := models.User{Name: "Host", Preference: types.PREFERENCE_PROVIDER}
	require.NoError(s.T(), s.DB.Create(&host).Error)

	props := make([]models.Property, 0, 65)
	for i := 0; i < 60; i++ {
		props = append(props, models.Property{HostID: host.ID, Name: fmt.Sprintf("Goa Stay %d", i), Type: types.PROPERTY_VILLA, City: "Goa", PricePerNight: float64(1000 + i), IsActive: true})
	}
	for i := 0; i < 5; i++ {
		props = append(props, models.Property{HostID: host.ID, Name: fmt.Sprintf("Mumbai Flat %d", i), Type: types.PROPERTY_COTTAGE, City: "Mumbai", PricePerNight: 4000, IsActive: true})
	}
	require.NoError(s.T(), s.DB.Create(&props).Error)
	op := models.BusOperator{Name: "RedLine"}
	require.NoError(s.T(), s.DB.Create(&op).Error)
	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(s.T(), s.DB.Create(&models.Bus{OperatorID: op.ID, BusNumber: "KA-01", FromCity: "Bangalore", ToCity: "Goa", SeatType: types.SEAT_SLEEPER, DepartureTime: day, ArrivalTime: day.Add(time.Hour)}).Error)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.Hub = NewHub()
	go s.Hub.Run(ctx)

	router := gin.New()
	router.GET("/ws/realtime/", NewServer(s.Hub, NewDispatcher(s.DB, 50), 16, nil).Handle)
	s.Server = httptest.NewServer(router)
}

func (s *RealtimeSuite) TearDownTest() {
	s.Server.Close()
	s.cancel()
	if inner, err := s.DB.DB(); err == nil {
		inner.Close()
	}
}

func (s *RealtimeSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.Server.URL, "http") + "/ws/realtime/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(s.T(), err)
	return conn
}

func (s *RealtimeSuite) read(conn *websocket.Conn) gjson.Result {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(s.T(), err)
	return gjson.ParseBytes(msg)
}

func (s *RealtimeSuite) waitForClients(n int) {
	require.Eventually(s.T(), func() bool { return s.Hub.Count() == n }, 2*time.Second, 10*time.Millisecond)
}

func (s *RealtimeSuite) TestSubscribePropertiesIsCappedAndFiltered() {
	conn := s.dial()
	defer conn.Close()

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_properties", "filters": map[string]any{"city": "Goa"}}))
	reply := s.read(conn)
	assert.Equal(s.T(), "properties_update", reply.Get("type").String())
	data := reply.Get("data").Array()
	assert.Len(s.T(), data, 50)
	for _, p := range data {
		assert.Equal(s.T(), "Goa", p.Get("city").String())
	}

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_properties", "filters": map[string]any{"city": "Mumbai", "min_price": 3000}}))
	reply = s.read(conn)
	assert.Len(s.T(), reply.Get("data").Array(), 5)
}

func (s *RealtimeSuite) TestSubscribeOtherEntities() {
	conn := s.dial()
	defer conn.Close()

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_buses", "filters": map[string]any{"to_city": "goa"}}))
	reply := s.read(conn)
	assert.Equal(s.T(), "buses_update", reply.Get("type").String())
	assert.Equal(s.T(), "KA-01", reply.Get("data.0.bus_number").String())

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_trains"}))
	reply = s.read(conn)
	assert.Equal(s.T(), "trains_update", reply.Get("type").String())
	assert.True(s.T(), reply.Get("data").IsArray())

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_homestays", "filters": map[string]any{}}))
	reply = s.read(conn)
	assert.Equal(s.T(), "homestays_update", reply.Get("type").String())
	assert.Len(s.T(), reply.Get("data").Array(), 0)
}

func (s *RealtimeSuite) TestErrorsGoToTheSender() {
	conn := s.dial()
	defer conn.Close()

	require.NoError(s.T(), conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	reply := s.read(conn)
	assert.Equal(s.T(), "error", reply.Get("type").String())

	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_properties", "filters": map[string]any{"min_price": "cheap"}}))
	reply = s.read(conn)
	assert.Equal(s.T(), "error", reply.Get("type").String())
	assert.True(s.T(), reply.Get("fields.min_price").Exists())

	// unknown types get no reply; the next valid request still does
	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "hello"}))
	require.NoError(s.T(), conn.WriteJSON(map[string]any{"type": "subscribe_buses"}))
	reply = s.read(conn)
	assert.Equal(s.T(), "buses_update", reply.Get("type").String())
}

func (s *RealtimeSuite) TestBroadcastReachesEveryClient() {
	a := s.dial()
	defer a.Close()
	b := s.dial()
	defer b.Close()
	s.waitForClients(2)

	payload := `{"type":"properties_update","data":[{"id":1}]}`
	s.Hub.ForwardPayload(payload)
	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(s.T(), err)
		assert.Equal(s.T(), payload, string(msg))
	}

	a.Close()
	s.waitForClients(1)
}

func (s *RealtimeSuite) TestPublisherWithoutRedisUsesLocalHub() {
	conn := s.dial()
	defer conn.Close()
	s.waitForClients(1)

	pub := NewPublisher(s.Hub, nil, nil, config.RealtimeConfig{Channel: "real_time_updates"})
	require.NoError(s.T(), pub.Publish(context.Background(), types.BUSES_UPDATE, []map[string]any{{"id": 3}}))
	reply := s.read(conn)
	assert.Equal(s.T(), "buses_update", reply.Get("type").String())
	assert.Equal(s.T(), int64(3), reply.Get("data.0.id").Int())
}

func TestRealtimeSuite(t *testing.T) {
	suite.Run(t, new(RealtimeSuite))
}

func TestPublisherUsesRedisChannel(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	pub := NewPublisher(nil, rdb, nil, config.RealtimeConfig{Channel: "real_time_updates"})
	mock.ExpectPublish("real_time_updates", []byte(`{"type":"trains_update","data":[]}`)).SetVal(1)

	require.NoError(t, pub.Publish(context.Background(), types.TRAINS_UPDATE, []int{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingTopic struct {
	payloads [][]byte
}

func (r *recordingTopic) Publish(_ context.Context, payload []byte) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

func TestPublisherPrefersTopicOverLocalHub(t *testing.T) {
	topic := &recordingTopic{}
	pub := NewPublisher(nil, nil, nil, config.RealtimeConfig{}).WithTopic(topic)

	require.NoError(t, pub.Publish(context.Background(), types.HOMESTAYS_UPDATE, []map[string]any{{"id": 9}}))
	require.Len(t, topic.payloads, 1)
	assert.Equal(t, "homestays_update", gjson.GetBytes(topic.payloads[0], "type").String())
	assert.Equal(t, int64(9), gjson.GetBytes(topic.payloads[0], "data.0.id").Int())
}

func TestSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := newClient(hub, nil, 1)
	require.True(t, hub.join(c))
	hub.Broadcast([]byte("one"))
	hub.Broadcast([]byte("two"))

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, c.closed())
	assert.Equal(t, "one", string(<-c.send))
}

func TestDispatcherLimit(t *testing.T) {
	assert.Equal(t, DefaultSnapshotLimit, NewDispatcher(nil, 0).limit)
	assert.Equal(t, DefaultSnapshotLimit, NewDispatcher(nil, 500).limit)
	assert.Equal(t, 10, NewDispatcher(nil, 10).limit)
	assert.Nil(t, NewDispatcher(nil, 10).Handle([]byte(`{"type":"ping"}`)))
}

func TestClientHandlesFramesOneAtATime(t *testing.T) {
	c := newClient(NewHub(), nil, 64)
	defer c.close()

	release := make(chan struct{})
	var running, peak, handled int32
	go c.work(func(raw []byte) []byte {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		<-release
		atomic.AddInt32(&running, -1)
		atomic.AddInt32(&handled, 1)
		return raw
	})

	var accepted []string
	for i := 0; i < 50; i++ {
		frame := fmt.Sprintf(`{"type":"subscribe_properties","n":%d}`, i)
		if c.accept([]byte(frame)) {
			accepted = append(accepted, frame)
		}
	}
	assert.GreaterOrEqual(t, len(accepted), frameBacklog)
	assert.LessOrEqual(t, len(accepted), frameBacklog+1)

	close(release)
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&handled) == int32(len(accepted)) }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))

	for _, want := range accepted {
		assert.Equal(t, want, string(<-c.send))
	}
}
