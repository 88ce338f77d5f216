package credentials

import (
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

type requestedAttrEntry struct {
	CredID    string  `json:"cred_id"`
	Revealed  bool    `json:"revealed"`
	Timestamp *uint64 `json:"timestamp"`
}

type requestedPredicateEntry struct {
	CredID    string  `json:"cred_id"`
	Timestamp *uint64 `json:"timestamp"`
}

type requestedCredentials struct {
	SelfAttestedAttributes json.RawMessage                    `json:"self_attested_attributes"`
	RequestedAttributes    map[string]requestedAttrEntry      `json:"requested_attributes"`
	RequestedPredicates    map[string]requestedPredicateEntry `json:"requested_predicates"`
}

// BuildRequestedCredentials implements component E: it builds the
// indy-style requested_credentials payload fed to the crypto engine.
//
// Each CredInfoProver lands in requested_attributes if its RequestedAttr
// key names a requested attribute, else in requested_predicates if it names
// a requested predicate, else it is silently dropped. Selective disclosure
// is not supported by this core, so Revealed is always true.
func BuildRequestedCredentials(creds []CredInfoProver, selfAttested []byte, req *proofreq.ProofRequestData) ([]byte, error) {
	var selfAttestedValue json.RawMessage
	if err := json.Unmarshal(selfAttested, &selfAttestedValue); err != nil {
		return nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot deserialize self attested attributes")
	}

	out := requestedCredentials{
		SelfAttestedAttributes: selfAttestedValue,
		RequestedAttributes:    map[string]requestedAttrEntry{},
		RequestedPredicates:    map[string]requestedPredicateEntry{},
	}

	for _, cred := range creds {
		if _, ok := req.RequestedAttributes[cred.RequestedAttr]; ok {
			out.RequestedAttributes[cred.RequestedAttr] = requestedAttrEntry{
				CredID:    cred.Referent,
				Revealed:  true,
				Timestamp: cred.Timestamp,
			}
			continue
		}
		if _, ok := req.RequestedPredicates[cred.RequestedAttr]; ok {
			out.RequestedPredicates[cred.RequestedAttr] = requestedPredicateEntry{
				CredID:    cred.Referent,
				Timestamp: cred.Timestamp,
			}
		}
		// Neither map contains the key: silently dropped, per spec.
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot serialize requested credentials")
	}
	return encoded, nil
}
