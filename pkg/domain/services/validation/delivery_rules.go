package validation

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/services/responsibility"
)

func ownDeliveryRules() []Rule[*entities.Delivery] {
	return []Rule[*entities.Delivery]{
		quantityNotNegative[*entities.Delivery](),
		unitPresent[*entities.Delivery](),
		materialPresent[*entities.Delivery]("Missing material."),
		partnerPresent[*entities.Delivery]("Missing partner."),
		lastUpdatedPresent[*entities.Delivery](),
		lastUpdatedNotInFuture[*entities.Delivery](),
		{
			Name:    "departure-type",
			Message: "Departure type must be estimated-departure or actual-departure.",
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				return d.DepartureType.IsDeparture(), nil
			},
		},
		{
			Name:    "arrival-type",
			Message: "Arrival type must be estimated-arrival or actual-arrival.",
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				return d.ArrivalType.IsArrival(), nil
			},
		},
		{
			Name:    "event-combination",
			Message: "Estimated departure cannot be combined with actual arrival.",
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				return !(d.DepartureType == entities.EstimatedDeparture && d.ArrivalType == entities.ActualArrival), nil
			},
		},
		{
			Name:    "departure-before-arrival",
			Message: "Departure time must be before arrival time.",
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				if d.DepartureTime == nil || d.ArrivalTime == nil {
					return false, nil
				}
				return d.DepartureTime.Before(*d.ArrivalTime), nil
			},
		},
		{
			Name:    "actual-departure-not-in-future",
			Message: "Actual departure cannot be in the future.",
			Check: func(_ context.Context, s *session, d *entities.Delivery) (bool, error) {
				if d.DepartureType != entities.ActualDeparture {
					return true, nil
				}
				return d.DepartureTime != nil && d.DepartureTime.Before(s.now), nil
			},
		},
		{
			Name:    "actual-arrival-not-in-future",
			Message: "Actual arrival cannot be in the future.",
			Check: func(_ context.Context, s *session, d *entities.Delivery) (bool, error) {
				if d.ArrivalType != entities.ActualArrival {
					return true, nil
				}
				return d.ArrivalTime != nil && d.ArrivalTime.Before(s.now), nil
			},
		},
		{
			Name:    "incoterm-present",
			Message: "Missing incoterm.",
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				return d.Incoterm != "", nil
			},
		},
		{
			Name:    "responsibility",
			Message: "Origin and destination BPNS do not match the incoterm responsibility.",
			Check: func(_ context.Context, s *session, d *entities.Delivery) (bool, error) {
				if d.Incoterm == "" || d.Material == nil || d.Partner == nil {
					return false, nil
				}
				if err := s.sitesKnown(s.own, d.Partner); err != nil {
					return false, err
				}
				return responsibility.Resolve(d.Incoterm, d.Material, s.own, d.Partner, d.OriginBPNS, d.DestinationBPNS), nil
			},
		},
		partnerNotOwn[*entities.Delivery](),
		{
			Name:    "order-reference",
			Message: orderReferenceMessage,
			Check: func(_ context.Context, _ *session, d *entities.Delivery) (bool, error) {
				return d.OrderPositionReference.Consistent(), nil
			},
		},
	}
}

// Reported deliveries are the partner's view and only carry the basic checks
func reportedDeliveryRules() []Rule[*entities.Delivery] {
	return []Rule[*entities.Delivery]{
		quantityPositive[*entities.Delivery](),
		unitPresent[*entities.Delivery](),
		materialPresent[*entities.Delivery]("Missing material."),
		partnerPresent[*entities.Delivery]("Missing partner."),
	}
}
