package entities

import "time"

// Production is a planned output of a production site
type Production struct {
	QuantityRecord
	OrderPositionReference
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	ProductionSite      BPNS       `json:"production_site"`
}

// Kind returns KindProduction
func (p *Production) Kind() RecordKind {
	return KindProduction
}
