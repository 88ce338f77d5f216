package messaging

import "github.com/aries-go/vcprover/pkg/proofreq"

// FilterByName keeps only the requests whose attachment decodes to JSON
// whose top-level "name" field equals target. Attachments that fail base64
// or JSON decoding, or that lack a name field, are dropped silently, never
// as errors.
//
// An empty target matches nothing, including requests whose own name is
// itself empty — this is the present, possibly-wrong behaviour preserved
// from the source rather than guessed at; see DESIGN.md.
func FilterByName(requests []proofreq.PresentationRequest, target string) []proofreq.PresentationRequest {
	if target == "" {
		return nil
	}

	kept := make([]proofreq.PresentationRequest, 0, len(requests))
	for _, req := range requests {
		name, ok := proofreq.AttachmentName(&req)
		if !ok || name != target {
			continue
		}
		kept = append(kept, req)
	}
	return kept
}
