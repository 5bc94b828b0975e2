package realtime

import (
	"encoding/json"
	"log"
	"travelhub/src/common"
	"travelhub/src/lib"
	"travelhub/src/types"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const DefaultSnapshotLimit = 50

type snapshotFunc func(db *gorm.DB, params common.FilterParams, limit int) (any, error)

type route struct {
	reply string
	query snapshotFunc
}

var routes = map[string]route{
	types.SUBSCRIBE_PROPERTIES: {types.PROPERTIES_UPDATE, func(db *gorm.DB, p common.FilterParams, limit int) (any, error) {
		return common.ListProperties(db, p, limit)
	}},
	types.SUBSCRIBE_BUSES: {types.BUSES_UPDATE, func(db *gorm.DB, p common.FilterParams, limit int) (any, error) {
		return common.ListBuses(db, p, limit)
	}},
	types.SUBSCRIBE_TRAINS: {types.TRAINS_UPDATE, func(db *gorm.DB, p common.FilterParams, limit int) (any, error) {
		return common.ListTrains(db, p, limit)
	}},
	types.SUBSCRIBE_HOMESTAYS: {types.HOMESTAYS_UPDATE, func(db *gorm.DB, p common.FilterParams, limit int) (any, error) {
		return common.ListHomestays(db, p, limit)
	}},
}

// Dispatcher turns one client frame into at most one reply frame.
type Dispatcher struct {
	db    *gorm.DB
	limit int
}

func NewDispatcher(db *gorm.DB, limit int) *Dispatcher {
	if limit <= 0 || limit > DefaultSnapshotLimit {
		limit = DefaultSnapshotLimit
	}
	return &Dispatcher{db: db, limit: limit}
}

func encode(msg types.RealtimeMessage) []byte {
	out, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[realtime] Error encoding message: %s\n", err.Error())
		return nil
	}
	return out
}

func errorFrame(err error) []byte {
	appErr := types.AsAppError(err)
	if appErr.Kind == types.ERR_INTERNAL {
		log.Printf("[realtime] Error running snapshot: %s\n", err.Error())
	}
	return encode(types.RealtimeMessage{Type: types.REALTIME_ERROR, Error: appErr.Message, Fields: appErr.Fields})
}

// Handle returns nil for frames that need no reply.
func (d *Dispatcher) Handle(raw []byte) []byte {
	if !gjson.ValidBytes(raw) {
		return errorFrame(types.NewFieldError("message", "malformed JSON"))
	}
	msg := gjson.ParseBytes(raw)
	kind := msg.Get("type").String()
	r, ok := routes[kind]
	if !ok {
		return nil
	}
	lib.IncRealtimeMessage(kind)
	filters := msg.Get("filters")
	if filters.Exists() && filters.Type != gjson.Null && !filters.IsObject() {
		return errorFrame(types.NewFieldError("filters", "must be an object"))
	}
	data, err := r.query(d.db, common.FilterParamsFromJSON(filters), d.limit)
	if err != nil {
		return errorFrame(err)
	}
	return encode(types.RealtimeMessage{Type: r.reply, Data: data})
}
