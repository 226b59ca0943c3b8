package responsibility

import "github.com/vsinha/supplycover/pkg/domain/entities"

// Resolve reports whether the origin and destination of a delivery are
// owned by the parties its incoterm makes responsible.
//
// Supplier responsibility requires a product leaving an own site towards a
// partner site, customer responsibility a material arriving at an own site
// from a partner site. Partial responsibility accepts either flow.
func Resolve(
	incoterm entities.Incoterm,
	material *entities.Material,
	own, other *entities.Partner,
	origin, destination entities.BPNS,
) bool {
	if material == nil || own == nil || other == nil {
		return false
	}
	responsibility, ok := incoterm.Responsibility()
	if !ok {
		return false
	}

	switch responsibility {
	case entities.SupplierResponsibility:
		return outbound(material, own, other, origin, destination)
	case entities.CustomerResponsibility:
		return inbound(material, own, other, origin, destination)
	case entities.PartialResponsibility:
		return outbound(material, own, other, origin, destination) ||
			inbound(material, own, other, origin, destination)
	default:
		return false
	}
}

func outbound(material *entities.Material, own, other *entities.Partner, origin, destination entities.BPNS) bool {
	return material.ProductFlag && own.OwnsSite(origin) && other.OwnsSite(destination)
}

func inbound(material *entities.Material, own, other *entities.Partner, origin, destination entities.BPNS) bool {
	return material.MaterialFlag && other.OwnsSite(origin) && own.OwnsSite(destination)
}
