package push

import (
	"encoding/json"

	"github.com/claudiojas/rockbandpay-table-client/models"
)

// Inbound frame types observed on the session channel.
const (
	TypeNewOrder           = "NEW_ORDER"
	TypeOrderStatusUpdated = "ORDER_STATUS_UPDATED"
)

// Event is the decoded form of an inbound frame. Handlers switch over
// NewOrder, StatusChanged and Unknown; Unknown is logged and dropped, never
// treated as fatal.
type Event interface {
	event()
}

// NewOrder carries the full payload of a freshly created order.
type NewOrder struct {
	Order models.Order
}

// StatusChanged signals that some order changed state. The payload is
// informational only; the authoritative state comes from a re-fetch.
type StatusChanged struct{}

// Unknown is a frame of a type this client does not understand.
type Unknown struct {
	Type string
}

func (NewOrder) event()      {}
func (StatusChanged) event() {}
func (Unknown) event()       {}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func parseEvent(raw []byte) (Event, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	switch f.Type {
	case TypeNewOrder:
		var o models.Order
		if err := json.Unmarshal(f.Payload, &o); err != nil {
			return nil, err
		}
		return NewOrder{Order: o}, nil
	case TypeOrderStatusUpdated:
		return StatusChanged{}, nil
	default:
		return Unknown{Type: f.Type}, nil
	}
}
