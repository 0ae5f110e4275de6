package model

// Action is an operator-initiated scan action. The four tokens are the
// protocol between scanner and registry and must be reproduced exactly.
type Action string

// Scan actions.
const (
	ActionView   Action = "view"
	ActionDamage Action = "damage"
	ActionShip   Action = "ship"
	ActionAccept Action = "accept"
)

// ParseAction maps a raw action token to an Action. The second return value
// is false for unrecognized tokens.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case ActionView, ActionDamage, ActionShip, ActionAccept:
		return Action(s), true
	}
	return "", false
}

// transitions is the status state machine: current status → legal mutating
// actions → resulting status. Missing entries are illegal transitions.
// ActionView never appears here; it is a read and mutates nothing. Damage is
// legal from every status except damaged itself, where it would be a
// redundant no-op and is rejected so the caller can tell it apart from a
// real transition.
var transitions = map[Status]map[Action]Status{
	StatusInStock: {
		ActionDamage: StatusDamaged,
		ActionShip:   StatusShipped,
	},
	StatusShipped: {
		ActionDamage: StatusDamaged,
		ActionAccept: StatusAccepted,
	},
	StatusAccepted: {
		ActionDamage: StatusDamaged,
	},
	StatusDamaged: {},
}

// Transition returns the status that applying action to current yields. The
// second return value is false if the transition is illegal.
func Transition(current Status, action Action) (Status, bool) {
	next, ok := transitions[current][action]
	return next, ok
}

// Terminal reports whether action ends a scan session's interest in the item
// (the scanner debounce resets after it succeeds).
func Terminal(action Action) bool {
	return action == ActionAccept || action == ActionDamage
}
