package types

import "testing"

func TestStepsForLength(t *testing.T) {
	if got := len(StepsFor(OrderTypeBuy)); got != 5 {
		t.Fatalf("buy steps = %d, want 5", got)
	}
	if got := len(StepsFor(OrderTypeSell)); got != 6 {
		t.Fatalf("sell steps = %d, want 6", got)
	}
}

func TestStepsForSellInsertsSampleTest(t *testing.T) {
	steps := StepsFor(OrderTypeSell)
	if steps[1] != StepSampleTestRequired {
		t.Fatalf("sell step 1 = %q, want %q", steps[1], StepSampleTestRequired)
	}
	// remaining steps line up with the buy vocabulary
	buy := StepsFor(OrderTypeBuy)
	if steps[0] != buy[0] {
		t.Errorf("step 0 mismatch: %q vs %q", steps[0], buy[0])
	}
	for i := 2; i < len(steps); i++ {
		if steps[i] != buy[i-1] {
			t.Errorf("sell step %d = %q, want %q", i, steps[i], buy[i-1])
		}
	}
}

func TestStepIndex(t *testing.T) {
	tests := []struct {
		orderType string
		status    string
		want      int
	}{
		{OrderTypeBuy, StepOrderSubmitted, 0},
		{OrderTypeBuy, StepPaymentInitiated, 3},
		{OrderTypeBuy, StepOrderCompleted, 4},
		{OrderTypeBuy, StatusCompleted, 4},
		{OrderTypeSell, StepSampleTestRequired, 1},
		{OrderTypeSell, StepPaymentInitiated, 4},
		{OrderTypeSell, StatusCompleted, 5},
		{OrderTypeBuy, StatusCancelled, -1},
		{OrderTypeBuy, "Nonsense", -1},
	}
	for _, tt := range tests {
		if got := StepIndex(tt.orderType, tt.status); got != tt.want {
			t.Errorf("StepIndex(%q, %q) = %d, want %d", tt.orderType, tt.status, got, tt.want)
		}
	}
}

func TestDeriveFlowStepsMidPipeline(t *testing.T) {
	steps := DeriveFlowSteps(OrderTypeBuy, StepPaymentInitiated)
	if len(steps) != 5 {
		t.Fatalf("len = %d, want 5", len(steps))
	}
	for i := 0; i < 3; i++ {
		if !steps[i].Completed {
			t.Errorf("step %d should be completed", i)
		}
		if steps[i].Active {
			t.Errorf("step %d should not be active", i)
		}
	}
	if !steps[3].Active || steps[3].Completed {
		t.Errorf("step 3 = %+v, want active and not completed", steps[3])
	}
	if steps[4].Active || steps[4].Completed {
		t.Errorf("step 4 = %+v, want neither active nor completed", steps[4])
	}
}

func TestDeriveFlowStepsAtSubmission(t *testing.T) {
	// A freshly submitted order shows its first step both completed and
	// active: submission already happened.
	steps := DeriveFlowSteps(OrderTypeSell, StepOrderSubmitted)
	if !steps[0].Completed || !steps[0].Active {
		t.Fatalf("step 0 = %+v, want completed and active", steps[0])
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].Completed || steps[i].Active {
			t.Errorf("step %d = %+v, want inert", i, steps[i])
		}
	}
}

func TestDeriveFlowStepsCancelled(t *testing.T) {
	for _, orderType := range []string{OrderTypeBuy, OrderTypeSell} {
		for _, step := range DeriveFlowSteps(orderType, StatusCancelled) {
			if step.Completed || step.Active {
				t.Errorf("%s cancelled step %q = %+v, want inert", orderType, step.Label, step)
			}
		}
	}
}

func TestDeriveFlowStepsExactlyOneActive(t *testing.T) {
	for _, status := range StepsFor(OrderTypeSell) {
		active := 0
		for _, step := range DeriveFlowSteps(OrderTypeSell, status) {
			if step.Active {
				active++
			}
		}
		if active != 1 {
			t.Errorf("status %q: %d active steps, want 1", status, active)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	if !IsTerminalStatus(OrderTypeBuy, StatusCancelled) {
		t.Error("Cancelled should be terminal")
	}
	if !IsTerminalStatus(OrderTypeBuy, StepOrderCompleted) {
		t.Error("last buy step should be terminal")
	}
	if !IsTerminalStatus(OrderTypeSell, StatusCompleted) {
		t.Error("Completed sentinel should be terminal for sell")
	}
	if IsTerminalStatus(OrderTypeSell, StepPaymentInitiated) {
		t.Error("mid-pipeline status should not be terminal")
	}
}
