package models

// OrderStatus is the lifecycle state of an order. The forward chain is
// Pending -> Preparing -> Assigned to Delivery Boy -> Picked Up -> Out for Delivery -> Delivered,
// with Cancelled reachable from any non-terminal state.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusAssigned       OrderStatus = "Assigned to Delivery Boy"
	StatusPickedUp       OrderStatus = "Picked Up"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var nextOrderStatus = map[OrderStatus]OrderStatus{
	StatusPending:        StatusPreparing,
	StatusPreparing:      StatusAssigned,
	StatusAssigned:       StatusPickedUp,
	StatusPickedUp:       StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// ActiveDeliveryStatuses are the states during which a delivery boy is
// on the road with the order. Used for agent order lists and for deciding
// whether a customer may see the agent's live location.
var ActiveDeliveryStatuses = []OrderStatus{StatusAssigned, StatusPickedUp, StatusOutForDelivery}

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusAssigned, StatusPickedUp,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Next returns the single permitted forward transition, or "" from a
// terminal state.
func (s OrderStatus) Next() OrderStatus {
	return nextOrderStatus[s]
}

// CanTransitionTo reports whether target is exactly one step forward along
// the chain. Skipping and going backward are both rejected.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return nextOrderStatus[s] == target && target != ""
}

// AgentCanTransition reports whether a delivery boy may move an order from
// one status to another. The agent chain starts at Assigned; advancing out
// of Pending or Preparing is an admin operation.
func AgentCanTransition(from OrderStatus, to OrderStatus) bool {
	switch from {
	case StatusAssigned, StatusPickedUp, StatusOutForDelivery:
		return from.CanTransitionTo(to)
	}
	return false
}

// CanCancel reports whether an order may still be cancelled. Cancellation
// is admin-only and is allowed from any non-terminal state.
func (s OrderStatus) CanCancel() bool {
	return s.IsValid() && !s.IsTerminal()
}
