package order

import (
	"time"

	"github.com/vegruit/storefront/internal/backend"
)

// Stage is one step of an order's progress.
type Stage struct {
	Status  Status     `json:"status"`
	Label   string     `json:"label"`
	Reached bool       `json:"reached"`
	At      *time.Time `json:"at,omitempty"`
}

// Timeline lists the lifecycle stages with the time each was reached. A
// cancelled or rejected order ends with that stage.
func Timeline(o backend.Order) []Stage {
	current, _ := Parse(o.Status)
	at := map[Status]*time.Time{
		Confirmed:  o.ConfirmedAt,
		Processing: o.ProcessedAt,
		Shipped:    o.ShippedAt,
		Delivered:  o.DeliveredAt,
		Received:   o.ReceivedAt,
	}
	if !o.OrderDate.IsZero() {
		placed := o.OrderDate
		at[Pending] = &placed
	}

	stages := make([]Stage, 0, len(lifecycle)+1)
	for _, s := range lifecycle {
		reached := at[s] != nil
		if !current.Terminal() || current == Received {
			reached = reached || s.rank() <= current.rank()
		}
		if s == Pending {
			reached = true
		}
		stages = append(stages, Stage{Status: s, Label: projections[s].Label, Reached: reached, At: at[s]})
	}
	if current == Cancelled || current == Rejected {
		stages = append(stages, Stage{Status: current, Label: projections[current].Label, Reached: true})
	}
	return stages
}
