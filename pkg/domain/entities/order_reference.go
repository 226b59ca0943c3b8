package entities

// OrderPositionReference links a record to an order position.
// Empty strings mean the field is absent.
type OrderPositionReference struct {
	CustomerOrderID         string `json:"customer_order_id,omitempty"`
	CustomerOrderPositionID string `json:"customer_order_position_id,omitempty"`
	SupplierOrderID         string `json:"supplier_order_id,omitempty"`
}

// IsEmpty reports whether no order field is set
func (r OrderPositionReference) IsEmpty() bool {
	return r.CustomerOrderID == "" && r.CustomerOrderPositionID == "" && r.SupplierOrderID == ""
}

// Consistent reports whether the reference is either complete or wholly absent.
// Customer order id and position id are co-required; the supplier order id
// may only be given together with them.
func (r OrderPositionReference) Consistent() bool {
	if r.CustomerOrderID != "" && r.CustomerOrderPositionID != "" {
		return true
	}
	return r.IsEmpty()
}
