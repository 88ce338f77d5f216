// Package connection defines the pairwise-connection collaborator that the
// prover core sends through and queries for addressing details. Connection
// lifecycle (DID exchange, key rotation) is out of scope; only the narrow
// shape this core depends on is defined here.
package connection

import (
	"context"

	"github.com/aries-go/vcprover/pkg/messaging"
)

// Connection is the external pairwise-connection collaborator: whether it
// speaks the v3 (DID-com v2 style) protocol envelope, its pairwise verkey
// for decryption, and outbound delivery of an A2A message.
type Connection interface {
	// IsV3 reports whether handle uses the v3 message envelope; the
	// distinction affects how callers wrap outbound messages, not this
	// core's own state machine.
	IsV3(ctx context.Context, handle string) (bool, error)

	// GetPwVerkey returns the pairwise verkey used to decrypt inbound
	// messages addressed to handle.
	GetPwVerkey(ctx context.Context, handle string) (string, error)

	// SendMessage delivers an outbound A2A message over handle.
	SendMessage(ctx context.Context, handle string, msg messaging.A2AMessage) error
}
