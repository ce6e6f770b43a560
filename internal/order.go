package internal

import (
	"github.com/DrGermanius/Reconciler/internal/model"
)

var (
	StateInitial   = model.State{Status: model.StatusPending, Payment: model.PaymentUnpaid}
	StateConfirmed = model.State{Status: model.StatusConfirmed, Payment: model.PaymentPaid}
)

var legalStates = []model.State{
	StateInitial,
	{Status: model.StatusProcessing, Payment: model.PaymentPaid},
	StateConfirmed,
	{Status: model.StatusCancelled, Payment: model.PaymentUnpaid},
	{Status: model.StatusCancelled, Payment: model.PaymentPaid},
	{Status: model.StatusRefunded, Payment: model.PaymentRefunded},
}

// IsLegalState reports whether the pair may be persisted.
func IsLegalState(s model.State) bool {
	for _, l := range legalStates {
		if l == s {
			return true
		}
	}
	return false
}

func isTerminal(s model.State) bool {
	return s.Status == model.StatusCancelled ||
		s.Status == model.StatusRefunded ||
		s.Payment == model.PaymentRefunded
}

// ApplyPaymentConfirmed moves the order to (CONFIRMED, PAID). An order that is already
// there comes back unchanged with changed=false. Cancelled or refunded orders are never
// touched and yield a *TerminalConflictError.
func ApplyPaymentConfirmed(o model.Order) (next model.Order, changed bool, err error) {
	cur := o.State()
	if cur == StateConfirmed {
		return o, false, nil
	}
	if isTerminal(cur) {
		return o, false, &TerminalConflictError{OrderID: o.ID, State: cur}
	}
	return o.WithState(StateConfirmed), true, nil
}
