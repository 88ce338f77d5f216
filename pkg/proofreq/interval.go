package proofreq

import (
	"fmt"

	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// ResolveInterval implements component A, the interval resolver: it looks
// the given key up first in requested_attributes, then in
// requested_predicates. If found, the entry's own non_revoked wins; failing
// that, the request-level non_revoked is used; failing that, nil (no
// interval constraint). If the key is in neither map, resolution fails with
// InvalidProofCredentialData.
func ResolveInterval(key string, req *ProofRequestData) (*NonRevokedInterval, error) {
	if attr, ok := req.RequestedAttributes[key]; ok {
		return firstNonNil(attr.NonRevoked, req.NonRevoked), nil
	}
	if pred, ok := req.RequestedPredicates[key]; ok {
		return firstNonNil(pred.NonRevoked, req.NonRevoked), nil
	}
	return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, fmt.Sprintf("attribute not found for: %s", key))
}

func firstNonNil(a, b *NonRevokedInterval) *NonRevokedInterval {
	if a != nil {
		return a
	}
	return b
}
