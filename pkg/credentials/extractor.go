package credentials

import (
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/proofreq"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// selectedCredential mirrors one entry of the "attrs" map in the
// application-supplied selected-credentials JSON:
//
//	{ "attrs": { "<requested_attr>": {
//	    "credential": { "cred_info": { "referent": ..., "schema_id": ..., ... } },
//	    "tails_file": "..."
//	} } }
type selectedCredential struct {
	Credential struct {
		CredInfo struct {
			Referent  *string `json:"referent"`
			SchemaID  *string `json:"schema_id"`
			CredDefID *string `json:"cred_def_id"`
			RevRegID  *string `json:"rev_reg_id"`
			CredRevID *string `json:"cred_rev_id"`
		} `json:"cred_info"`
	} `json:"credential"`
	TailsFile *string `json:"tails_file"`
}

type selectedCredentialsEnvelope struct {
	Attrs map[string]selectedCredential `json:"attrs"`
}

// ExtractCredentialIdentifiers implements component B: it parses the
// selected-credentials JSON produced by the application (typically fed by a
// wallet search) into one CredInfoProver per requested attribute or
// predicate, resolving each one's non-revocation interval via component A.
//
// Order of emission follows Go's (randomized) map iteration order; per the
// spec, downstream logic does not depend on emission order.
func ExtractCredentialIdentifiers(selected []byte, req *proofreq.ProofRequestData) ([]CredInfoProver, error) {
	var envelope selectedCredentialsEnvelope
	if err := json.Unmarshal(selected, &envelope); err != nil {
		return nil, vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot deserialize credentials")
	}

	result := make([]CredInfoProver, 0, len(envelope.Attrs))
	for requestedAttr, entry := range envelope.Attrs {
		info := entry.Credential.CredInfo
		if info.Referent == nil || info.SchemaID == nil || info.CredDefID == nil {
			return nil, vcerrors.New(vcerrors.InvalidProofCredentialData, "cannot get identifiers")
		}

		interval, err := proofreq.ResolveInterval(requestedAttr, req)
		if err != nil {
			return nil, err
		}

		result = append(result, CredInfoProver{
			RequestedAttr:      requestedAttr,
			Referent:           *info.Referent,
			SchemaID:           *info.SchemaID,
			CredDefID:          *info.CredDefID,
			RevRegID:           info.RevRegID,
			CredRevID:          info.CredRevID,
			TailsFile:          entry.TailsFile,
			RevocationInterval: interval,
		})
	}

	return result, nil
}
