package entities

import (
	"fmt"
	"time"
)

// EventType describes a transit event of a delivery
type EventType string

const (
	EstimatedDeparture EventType = "estimated-departure"
	ActualDeparture    EventType = "actual-departure"
	EstimatedArrival   EventType = "estimated-arrival"
	ActualArrival      EventType = "actual-arrival"
)

// ParseEventType parses an event type value. An empty value yields the absent type.
func ParseEventType(value string) (EventType, error) {
	switch EventType(value) {
	case "":
		return "", nil
	case EstimatedDeparture, ActualDeparture, EstimatedArrival, ActualArrival:
		return EventType(value), nil
	default:
		return "", fmt.Errorf("invalid event type: %s", value)
	}
}

// IsDeparture reports whether e is a departure event
func (e EventType) IsDeparture() bool {
	return e == EstimatedDeparture || e == ActualDeparture
}

// IsArrival reports whether e is an arrival event
func (e EventType) IsArrival() bool {
	return e == EstimatedArrival || e == ActualArrival
}

// IsActual reports whether e records something that already happened
func (e EventType) IsActual() bool {
	return e == ActualDeparture || e == ActualArrival
}

// Delivery is a shipment leg between an origin and a destination site
type Delivery struct {
	QuantityRecord
	OrderPositionReference
	TrackingNumber  string     `json:"tracking_number,omitempty"`
	Incoterm        Incoterm   `json:"incoterm,omitempty"`
	OriginBPNS      BPNS       `json:"origin_bpns"`
	OriginBPNA      BPNA       `json:"origin_bpna,omitempty"`
	DestinationBPNS BPNS       `json:"destination_bpns"`
	DestinationBPNA BPNA       `json:"destination_bpna,omitempty"`
	DepartureType   EventType  `json:"departure_type"`
	DepartureTime   *time.Time `json:"departure_time,omitempty"`
	ArrivalType     EventType  `json:"arrival_type"`
	ArrivalTime     *time.Time `json:"arrival_time,omitempty"`
}

// Kind returns KindDelivery
func (d *Delivery) Kind() RecordKind {
	return KindDelivery
}

// SiteFor returns the destination for inbound and the origin for outbound flow
func (d *Delivery) SiteFor(direction Direction) BPNS {
	if direction == Inbound {
		return d.DestinationBPNS
	}
	return d.OriginBPNS
}

// TimeFor returns the arrival time for inbound and the departure time for outbound flow
func (d *Delivery) TimeFor(direction Direction) *time.Time {
	if direction == Inbound {
		return d.ArrivalTime
	}
	return d.DepartureTime
}
