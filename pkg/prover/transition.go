package prover

import "github.com/aries-go/vcprover/pkg/messaging"

// transitionInbound is the pure (state, event) -> state function covering
// the PresentationSent row of the transition table: an inbound Ack or
// ProblemReport moves to Finished with the matching status, anything else
// is ignored and the state is returned unchanged. Outside PresentationSent
// there is nothing to do — per invariant 6, Finished and Declined never
// transition out, and earlier states have no inbound-message row at all.
func transitionInbound(state ProverState, msg messaging.A2AMessage) ProverState {
	if state.Kind != KindPresentationSent {
		return state
	}

	switch msg.Kind {
	case messaging.KindAck:
		state.Kind = KindFinished
		state.FinalStatus = StatusSuccess
	case messaging.KindProblemReport:
		state.Kind = KindFinished
		state.FinalStatus = StatusFailed
		state.ProblemReport = msg.ProblemReport
	default:
		// ignore: remain in PresentationSent
	}
	return state
}
