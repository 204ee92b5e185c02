package moderation

import "github.com/modfence/modfence/pkg/domain"

// Normalize resolves the message under moderation from a conversation window:
// the payload of the newest entry and its content kind. It is total over
// whatever the platform sends; malformed payloads come back as text with
// empty content. The second return is false for an empty window.
func Normalize(window domain.Window) (domain.Payload, domain.Kind, bool) {
	current, ok := window.Current()
	if !ok {
		return domain.Payload{}, domain.KindText, false
	}
	return current, current.Kind(), true
}
