package prover

import (
	"encoding/base64"
	"encoding/json"

	"github.com/aries-go/vcprover/pkg/vcerrors"
)

const serializationVersion = "2.0"

// persistedProver is the prover-internal payload wrapped by the
// {"version":"2.0","data":...} envelope.
type persistedProver struct {
	SourceID string      `json:"source_id"`
	State    ProverState `json:"state"`
}

type envelope struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// ToString serialises handle's prover into the persisted envelope.
func (s *Service) ToString(handle string) ([]byte, error) {
	var result []byte
	err := s.Registry.View(handle, func(sourceID string, state ProverState) error {
		dataJSON, err := json.Marshal(persistedProver{SourceID: sourceID, State: state})
		if err != nil {
			return vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot encode prover state")
		}

		out, err := json.Marshal(envelope{Version: serializationVersion, Data: dataJSON})
		if err != nil {
			return vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot encode envelope")
		}
		result = out
		return nil
	})
	return result, err
}

// FromString restores a prover from a persisted envelope, returning its new
// handle. Only version "2.0" is accepted; anything else is InvalidJSON.
func (s *Service) FromString(raw []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode envelope")
	}
	if env.Version != serializationVersion {
		return "", vcerrors.New(vcerrors.InvalidJSON, "unsupported serialisation version "+env.Version)
	}

	var persisted persistedProver
	if err := json.Unmarshal(env.Data, &persisted); err != nil {
		return "", vcerrors.Wrap(vcerrors.InvalidJSON, err, "cannot decode prover state")
	}

	return s.Registry.Create(persisted.SourceID, persisted.State), nil
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
