package order

import "github.com/vegruit/storefront/internal/session"

type Action string

const (
	ActionCancel         Action = "cancel"
	ActionConfirmReceipt Action = "confirm_receipt"
	ActionWriteReview    Action = "write_review"
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionAdvance        Action = "advance"
)

// AllowedActions returns what role may do with an order in the raw status.
// Unrecognised statuses offer nothing.
func AllowedActions(raw string, role session.UserType) []Action {
	s, ok := Parse(raw)
	if !ok {
		return []Action{}
	}
	actions := []Action{}
	switch role {
	case session.Buyer:
		switch s {
		case Pending, Confirmed:
			actions = append(actions, ActionCancel)
		case Delivered:
			actions = append(actions, ActionConfirmReceipt)
		case Received:
			actions = append(actions, ActionWriteReview)
		}
	case session.Seller:
		switch s {
		case Pending:
			actions = append(actions, ActionAccept, ActionReject)
		case Confirmed, Processing, Shipped:
			actions = append(actions, ActionAdvance)
		}
	}
	return actions
}

// Allows reports whether action is offered to role at raw.
func Allows(raw string, role session.UserType, action Action) bool {
	for _, a := range AllowedActions(raw, role) {
		if a == action {
			return true
		}
	}
	return false
}

// Next is the stage a seller advance moves to.
func Next(s Status) (Status, bool) {
	switch s {
	case Confirmed:
		return Processing, true
	case Processing:
		return Shipped, true
	case Shipped:
		return Delivered, true
	}
	return "", false
}

type edge struct {
	from, to Status
}

var transitions = map[edge]session.UserType{
	{Pending, Confirmed}:    session.Seller,
	{Confirmed, Processing}: session.Seller,
	{Processing, Shipped}:   session.Seller,
	{Shipped, Delivered}:    session.Seller,
	{Delivered, Received}:   session.Buyer,
	{Pending, Cancelled}:    session.Buyer,
	{Confirmed, Cancelled}:  session.Buyer,
	{Pending, Rejected}:     session.Seller,
}

// CanTransition reports whether actor may move an order from one status to
// another. Terminal states have no outgoing edges.
func CanTransition(from, to Status, actor session.UserType) bool {
	who, ok := transitions[edge{from, to}]
	return ok && who == actor
}

// target is the status an action moves an order to.
func target(from Status, action Action) (Status, bool) {
	switch action {
	case ActionCancel:
		return Cancelled, true
	case ActionConfirmReceipt:
		return Received, true
	case ActionAccept:
		return Confirmed, true
	case ActionReject:
		return Rejected, true
	case ActionAdvance:
		return Next(from)
	}
	return "", false
}
