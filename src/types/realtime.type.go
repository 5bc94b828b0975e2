package types

const (
	SUBSCRIBE_PROPERTIES = "subscribe_properties"
	SUBSCRIBE_BUSES      = "subscribe_buses"
	SUBSCRIBE_TRAINS     = "subscribe_trains"
	SUBSCRIBE_HOMESTAYS  = "subscribe_homestays"

	PROPERTIES_UPDATE = "properties_update"
	BUSES_UPDATE      = "buses_update"
	TRAINS_UPDATE     = "trains_update"
	HOMESTAYS_UPDATE  = "homestays_update"

	REALTIME_ERROR = "error"
)

// RealtimeMessage is the envelope for every server to client frame.
type RealtimeMessage struct {
	Type   string            `json:"type"`
	Data   any               `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}
