// Package order projects backend order statuses into what a view needs:
// label, icon, colour, progress and the actions open to the caller.
package order

import "strings"

type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Delivered  Status = "delivered"
	Received   Status = "received"
	Cancelled  Status = "cancelled"
	Rejected   Status = "rejected"
)

// lifecycle is the forward order of non-absorbing stages.
var lifecycle = []Status{Pending, Confirmed, Processing, Shipped, Delivered, Received}

// Parse normalises a raw status. "approved" is an alias of confirmed.
// ok is false for anything outside the fixed set.
func Parse(raw string) (s Status, ok bool) {
	switch v := Status(strings.ToLower(strings.TrimSpace(raw))); v {
	case "approved":
		return Confirmed, true
	case Pending, Confirmed, Processing, Shipped, Delivered, Received, Cancelled, Rejected:
		return v, true
	}
	return Pending, false
}

func (s Status) Terminal() bool {
	return s == Received || s == Cancelled || s == Rejected
}

func (s Status) rank() int {
	for i, st := range lifecycle {
		if st == s {
			return i
		}
	}
	return -1
}

// Projection is everything a view renders for one status.
type Projection struct {
	Status          Status `json:"status"`
	Label           string `json:"label"`
	Icon            string `json:"icon"`
	ColorClass      string `json:"colorClass"`
	ProgressPercent int    `json:"progressPercent"`
	Message         string `json:"message"`
}

var projections = map[Status]Projection{
	Pending:    {Pending, "Pending", "clock", "status-pending", 20, "Order placed, awaiting seller confirmation"},
	Confirmed:  {Confirmed, "Confirmed", "check-circle", "status-confirmed", 40, "The seller has accepted your order"},
	Processing: {Processing, "Processing", "package", "status-processing", 60, "Your order is being prepared"},
	Shipped:    {Shipped, "Shipped", "truck", "status-shipped", 80, "Your order is on its way"},
	Delivered:  {Delivered, "Delivered", "home", "status-delivered", 100, "Your order has been delivered"},
	Received:   {Received, "Received", "check-double", "status-received", 100, "Receipt confirmed. You can now review your items"},
	Cancelled:  {Cancelled, "Cancelled", "x-circle", "status-cancelled", 0, "This order was cancelled"},
	Rejected:   {Rejected, "Rejected", "ban", "status-rejected", 0, "The seller could not fulfil this order"},
}

// Project never fails: unknown input gets the pending projection.
func Project(raw string) Projection {
	s, _ := Parse(raw)
	return projections[s]
}

// Projections lists every status in lifecycle order followed by the
// absorbing states.
func Projections() []Projection {
	out := make([]Projection, 0, len(projections))
	for _, s := range lifecycle {
		out = append(out, projections[s])
	}
	return append(out, projections[Cancelled], projections[Rejected])
}
