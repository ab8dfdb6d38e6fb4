package checkout

// Step is one stage of the checkout dialog.
type Step string

const (
	StepDetails Step = "details"
	StepPayment Step = "payment"
	StepPix     Step = "pix"
	StepSuccess Step = "success"
)

func (s Step) String() string {
	return string(s)
}

// CanTransitionTo defines the legal moves of the flow: forward one stage at
// a time, back from payment and pix, and success only out of a submission.
func CanTransitionTo(from, to Step) bool {
	switch from {
	case StepDetails:
		return to == StepPayment
	case StepPayment:
		return to == StepDetails || to == StepPix || to == StepSuccess
	case StepPix:
		return to == StepPayment || to == StepSuccess
	default:
		return false
	}
}
