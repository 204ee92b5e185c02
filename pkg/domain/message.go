package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// Kind identifies the moderatable content type of a message payload.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
)

// ParseKind maps a raw type tag to a Kind. Anything unrecognized is text.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(KindImage):
		return KindImage
	case string(KindFile):
		return KindFile
	default:
		return KindText
	}
}

// Data is the kind-dependent body of a structured message. Text messages
// carry Text, images carry URL, file attachments carry URL plus an Extension
// hint. Some producers send a bare string instead of an object, and some
// misplace the type tag at this level; both forms decode into the same
// struct.
type Data struct {
	Text      string
	URL       string
	Extension string
	Type      string
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Text = s
		return nil
	}
	var obj struct {
		Text      string `json:"text"`
		URL       string `json:"url"`
		Extension string `json:"extension"`
		Type      string `json:"type"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		// Unrecognized shape, degrade to empty text content.
		return nil
	}
	d.Text = obj.Text
	d.URL = obj.URL
	d.Extension = obj.Extension
	d.Type = obj.Type
	return nil
}

// Payload is one message body. Legacy history messages are a bare string;
// structured messages carry a type tag and a Data body. Decoding is total:
// every shape the platform can send maps to a well-defined payload and never
// to an error.
type Payload struct {
	Legacy bool
	Text   string
	Type   string
	Data   Data
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		p.Legacy = true
		p.Text = s
		return nil
	}
	var obj struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	p.Type = obj.Type
	if len(obj.Data) > 0 {
		_ = json.Unmarshal(obj.Data, &p.Data)
	}
	return nil
}

// Kind resolves the payload's content kind. The payload-level tag wins; the
// nested data tag covers producers that misplace it; everything else is text.
func (p Payload) Kind() Kind {
	if p.Legacy {
		return KindText
	}
	if p.Type != "" {
		return ParseKind(p.Type)
	}
	if p.Data.Type != "" {
		return ParseKind(p.Data.Type)
	}
	return KindText
}

// TextContent returns the moderatable text of a text-kind payload.
func (p Payload) TextContent() string {
	if p.Legacy {
		return p.Text
	}
	return p.Data.Text
}

// Entry is one conversation window item: a mapping from sender id to payload.
// The platform sends exactly one sender per entry. If more than one appears,
// the lexicographically smallest sender wins so the choice is deterministic.
type Entry map[string]Payload

func (e Entry) Sender() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

func (e Entry) Payload() Payload {
	return e[e.Sender()]
}

// Window is the ordered conversation history, oldest to newest. The last
// entry carries the message under moderation.
type Window []Entry

// Current returns the payload of the newest entry, and false for an empty
// window.
func (w Window) Current() (Payload, bool) {
	if len(w) == 0 {
		return Payload{}, false
	}
	return w[len(w)-1].Payload(), true
}
