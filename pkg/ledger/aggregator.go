package ledger

import (
	"context"
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/credentials"
	"github.com/aries-go/vcprover/pkg/vcerrors"
)

// AggregateSchemas implements component F's schema half: for the distinct
// set of schema ids referenced by creds, fetch each schema JSON from the
// ledger and assemble { schema_id: schema_json }. An empty input yields
// "{}". A fetch failure on any id surfaces InvalidSchema.
func AggregateSchemas(ctx context.Context, l Ledger, creds []credentials.CredInfoProver) ([]byte, error) {
	seen := map[string]bool{}
	out := map[string]json.RawMessage{}

	for _, cred := range creds {
		if seen[cred.SchemaID] {
			continue
		}
		seen[cred.SchemaID] = true

		raw, err := l.GetSchema(ctx, cred.SchemaID)
		if err != nil {
			return nil, vcerrors.Wrap(vcerrors.InvalidSchema, err, "cannot fetch schema "+cred.SchemaID)
		}
		out[cred.SchemaID] = raw
	}

	return json.Marshal(out)
}

// AggregateCredDefs implements component F's cred-def half: for the distinct
// set of cred_def ids referenced by creds, fetch each definition JSON from
// the ledger and assemble { cred_def_id: cred_def_json }. An empty input
// yields "{}". A fetch failure on any id surfaces InvalidProofCredentialData,
// matching the source's distinction between the two halves (missing schema
// is a ledger-shape problem, missing cred-def is treated as malformed
// credential data).
func AggregateCredDefs(ctx context.Context, l Ledger, creds []credentials.CredInfoProver) ([]byte, error) {
	seen := map[string]bool{}
	out := map[string]json.RawMessage{}

	for _, cred := range creds {
		if seen[cred.CredDefID] {
			continue
		}
		seen[cred.CredDefID] = true

		raw, err := l.GetCredDef(ctx, cred.CredDefID)
		if err != nil {
			return nil, vcerrors.Wrap(vcerrors.InvalidProofCredentialData, err, "cannot fetch cred def "+cred.CredDefID)
		}
		out[cred.CredDefID] = raw
	}

	return json.Marshal(out)
}
