package entity

// OrchestratorState is a step of the per-utterance control loop.
type OrchestratorState int32

const (
	StateIdle OrchestratorState = iota
	StateAwaitingDecision
	StateExecuting
	StateDisambiguating
	StateFormatting
)

func (s OrchestratorState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingDecision:
		return "AWAITING_DECISION"
	case StateExecuting:
		return "EXECUTING"
	case StateDisambiguating:
		return "DISAMBIGUATING"
	case StateFormatting:
		return "FORMATTING"
	default:
		return "UNKNOWN"
	}
}
