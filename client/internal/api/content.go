package api

import "encoding/json"

// ContentKind tags how a response body was interpreted.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentJSON
	ContentText
)

func (k ContentKind) String() string {
	switch k {
	case ContentEmpty:
		return "empty"
	case ContentJSON:
		return "json"
	case ContentText:
		return "text"
	default:
		return "unknown"
	}
}

// Content is a parsed response body.
type Content struct {
	Kind ContentKind
	Raw  []byte
}

// Text returns the body as a string.
func (c Content) Text() string { return string(c.Raw) }

// ParseContent classifies body: zero bytes is empty, valid JSON is JSON,
// anything else (whitespace included) is text.
func ParseContent(body []byte) Content {
	if len(body) == 0 {
		return Content{Kind: ContentEmpty}
	}
	if json.Valid(body) {
		return Content{Kind: ContentJSON, Raw: body}
	}
	return Content{Kind: ContentText, Raw: body}
}

// successPayload returns the JSON a 2xx response contributes to the typed
// result: the body itself, {"message": text} for text, {} for empty.
func (c Content) successPayload() ([]byte, error) {
	switch c.Kind {
	case ContentJSON:
		return c.Raw, nil
	case ContentText:
		return json.Marshal(map[string]string{"message": c.Text()})
	default:
		return []byte("{}"), nil
	}
}
