package parser

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"
)

// ExtractBody walks a message payload tree and returns the best text
// representation it can find:
//
//  1. inline body data on the node itself (non-multipart message),
//  2. the first immediate text/html child carrying data,
//  3. the first immediate text/plain child carrying data,
//  4. the first non-empty result of recursing into children that are
//     themselves multipart, depth-first in sibling order.
//
// HTML is preferred over plain text because it is richer for rendering.
// When nothing decodes the result is "" and the caller substitutes the
// snippet.
func ExtractBody(p *gmail.MessagePart) string {
	if p == nil {
		return ""
	}

	if p.Body != nil && p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}

	if html := firstOfType(p.Parts, "text/html"); html != nil && html.Body != nil && html.Body.Data != "" {
		return decodeBody(html.Body.Data)
	}
	if plain := firstOfType(p.Parts, "text/plain"); plain != nil && plain.Body != nil && plain.Body.Data != "" {
		return decodeBody(plain.Body.Data)
	}

	for _, part := range p.Parts {
		if len(part.Parts) == 0 {
			continue
		}
		if nested := ExtractBody(part); nested != "" {
			return nested
		}
	}
	return ""
}

func firstOfType(parts []*gmail.MessagePart, mimeType string) *gmail.MessagePart {
	for _, part := range parts {
		if part.MimeType == mimeType {
			return part
		}
	}
	return nil
}

// decodeBody decodes the URL-safe base64 Gmail uses for body data.
// Gmail usually omits padding, so both the padded and raw variants are
// tried. Decode failures are non-fatal and yield "".
func decodeBody(data string) string {
	raw, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(raw)
}

// hasAttachment reports whether any part of the tree carries a filename,
// which is how Gmail marks attachment parts.
func hasAttachment(p *gmail.MessagePart) bool {
	for _, part := range p.Parts {
		if part.Filename != "" {
			return true
		}
		if hasAttachment(part) {
			return true
		}
	}
	return false
}
