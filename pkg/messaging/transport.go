package messaging

import (
	"context"
	"encoding/json"
)

// DownloadedMessage is one decrypted message retrieved from the agency,
// tagged with the opaque uid the host uses to mark it delivered.
type DownloadedMessage struct {
	UID     string
	Decrypted json.RawMessage
}

// Transport is the external messaging collaborator: downloading undelivered
// messages addressed to a set of DIDs and marking one delivered. Outbound
// sending belongs to the connection collaborator (see pkg/connection),
// since it is the connection, not the transport, that knows how to address
// and encrypt for its peer. Decryption of inbound payloads is likewise the
// transport's concern, not this core's.
type Transport interface {
	// DownloadMessages fetches undelivered messages addressed to any of
	// dids, optionally filtered by status and by a specific set of uids
	// (either filter may be empty to mean "no restriction").
	DownloadMessages(ctx context.Context, dids, statuses, uids []string) ([]DownloadedMessage, error)

	// UpdateMessageStatus marks the message uid as read/delivered for the
	// given connection.
	UpdateMessageStatus(ctx context.Context, connectionHandle, uid string) error
}
