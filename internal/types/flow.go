package types

// FlowStep is one entry of an order's step-progress list. The list always
// mirrors the step vocabulary for the order's type, in vocabulary order.
type FlowStep struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Active    bool   `json:"active"`
}

// Step labels shared by both pipelines. Sell orders carry one extra step.
const (
	StepOrderSubmitted     = "Order Submitted"
	StepSampleTestRequired = "Sample Test Required"
	StepOrderConfirmed     = "Order Confirmed"
	StepShipmentScheduled  = "Shipment Scheduled"
	StepPaymentInitiated   = "Payment Initiated"
	StepOrderCompleted     = "Order Completed"
)

var buySteps = []string{
	StepOrderSubmitted,
	StepOrderConfirmed,
	StepShipmentScheduled,
	StepPaymentInitiated,
	StepOrderCompleted,
}

var sellSteps = []string{
	StepOrderSubmitted,
	StepSampleTestRequired,
	StepOrderConfirmed,
	StepShipmentScheduled,
	StepPaymentInitiated,
	StepOrderCompleted,
}

// StepsFor returns the ordered step vocabulary for an order type.
// Sell orders carry six steps, buy orders five.
func StepsFor(orderType string) []string {
	if orderType == OrderTypeSell {
		return sellSteps
	}
	return buySteps
}

// StepIndex resolves a status to its index in the vocabulary for the given
// order type. The sentinel "Completed" resolves to the last step. Cancelled
// and anything else outside the vocabulary resolve to -1.
func StepIndex(orderType, status string) int {
	steps := StepsFor(orderType)
	if status == StatusCompleted {
		return len(steps) - 1
	}
	for i, label := range steps {
		if label == status {
			return i
		}
	}
	return -1
}

// DeriveFlowSteps builds the step-progress list implied by (type, status).
// Steps before the status index are completed, the status index is active,
// steps after are neither. The first step is marked completed as well as
// active when it is current: submission is itself a completed event.
// Cancelled orders, and any status outside the vocabulary, have no active
// and no completed steps.
func DeriveFlowSteps(orderType, status string) []FlowStep {
	labels := StepsFor(orderType)
	steps := make([]FlowStep, len(labels))
	idx := StepIndex(orderType, status)
	for i, label := range labels {
		steps[i] = FlowStep{
			Label:     label,
			Completed: idx >= 0 && (i < idx || (i == idx && i == 0)),
			Active:    i == idx,
		}
	}
	return steps
}

// IsTerminalStatus reports whether a status ends the pipeline: cancelled, or
// at the final step.
func IsTerminalStatus(orderType, status string) bool {
	if status == StatusCancelled {
		return true
	}
	steps := StepsFor(orderType)
	return StepIndex(orderType, status) == len(steps)-1
}
