package validation

import (
	"context"
	"fmt"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// Rules shared by every record kind

func materialPresent[T entities.Record](message string) Rule[T] {
	return Rule[T]{
		Name:    "material-present",
		Message: message,
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return r.Base().Material != nil, nil
		},
	}
}

func partnerPresent[T entities.Record](message string) Rule[T] {
	return Rule[T]{
		Name:    "partner-present",
		Message: message,
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return r.Base().Partner != nil, nil
		},
	}
}

func quantityPositive[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "quantity-positive",
		Message: "Quantity must be greater than 0.",
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return r.Base().Quantity.IsPositive(), nil
		},
	}
}

func quantityNotNegative[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "quantity-not-negative",
		Message: "Quantity must not be negative.",
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return !r.Base().Quantity.IsNegative(), nil
		},
	}
}

func unitPresent[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "unit-present",
		Message: "Missing measurement unit.",
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return r.Base().Unit != "", nil
		},
	}
}

func lastUpdatedPresent[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "last-updated-present",
		Message: "Missing lastUpdatedOnTime.",
		Check: func(_ context.Context, _ *session, r T) (bool, error) {
			return r.Base().LastUpdated != nil, nil
		},
	}
}

func lastUpdatedNotInFuture[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "last-updated-not-in-future",
		Message: "lastUpdatedOnDateTime cannot be in the future.",
		Check: func(_ context.Context, s *session, r T) (bool, error) {
			return !s.inFuture(r.Base().LastUpdated), nil
		},
	}
}

func partnerNotOwn[T entities.Record]() Rule[T] {
	return Rule[T]{
		Name:    "partner-not-own",
		Message: "Partner cannot be the same as own partner entity.",
		Check: func(_ context.Context, s *session, r T) (bool, error) {
			return !s.own.SameAs(r.Base().Partner), nil
		},
	}
}

// partnerTrades checks the material-partner relation. Customers order
// what the own partner produces, suppliers supply what it consumes.
func partnerTrades[T entities.Record](provenance entities.Provenance) Rule[T] {
	message := "Partner does not supply the specified material."
	if provenance == entities.Reported {
		message = "Partner does not order the specified material."
	}
	return Rule[T]{
		Name:    "partner-material-relation",
		Message: message,
		Check: func(ctx context.Context, s *session, r T) (bool, error) {
			base := r.Base()
			if base.Material == nil || base.Partner == nil {
				return false, nil
			}
			if s.relations == nil {
				return false, fmt.Errorf("no material relation directory configured")
			}
			var (
				ok  bool
				err error
			)
			if provenance == entities.Reported {
				ok, err = s.relations.PartnerOrders(ctx, base.Material.Number, base.Partner.BPNL)
			} else {
				ok, err = s.relations.PartnerSupplies(ctx, base.Material.Number, base.Partner.BPNL)
			}
			if err != nil {
				return false, fmt.Errorf("failed to look up material relation: %w", err)
			}
			return ok, nil
		},
	}
}

const orderReferenceMessage = "If an order position reference is given, customer order number and customer order position number must be set."

// siteOwner picks the partner that must own a site: the own partner for
// own records and the record partner for reported ones, or the reverse
// when swap is set.
func siteOwner(s *session, provenance entities.Provenance, partner *entities.Partner, swap bool) *entities.Partner {
	ownSide := provenance == entities.Own
	if swap {
		ownSide = !ownSide
	}
	if ownSide {
		return s.own
	}
	return partner
}
