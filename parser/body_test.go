package parser

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
)

func encodeBody(s string) *gmail.MessagePartBody {
	return &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte(s))}
}

func TestExtractBody_InlineDataTakesPrecedence(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     encodeBody("inline body"),
		Parts: []*gmail.MessagePart{
			{MimeType: "text/html", Body: encodeBody("<p>child html</p>")},
		},
	}

	assert.Equal(t, "inline body", ExtractBody(payload))
}

func TestExtractBody_PrefersHTMLOverPlain(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: encodeBody("plain version")},
			{MimeType: "text/html", Body: encodeBody("<p>html version</p>")},
		},
	}

	assert.Equal(t, "<p>html version</p>", ExtractBody(payload))
}

func TestExtractBody_FallsBackToPlain(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: encodeBody("plain only")},
		},
	}

	assert.Equal(t, "plain only", ExtractBody(payload))
}

func TestExtractBody_RecursesIntoNestedMultipart(t *testing.T) {
	// text/plain leaf three levels down, as produced by
	// multipart/mixed > multipart/related > multipart/alternative.
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/related",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{MimeType: "text/plain", Body: encodeBody("deep plain text")},
						},
					},
				},
			},
		},
	}

	assert.Equal(t, "deep plain text", ExtractBody(payload))
}

func TestExtractBody_NoTextAnywhere(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{MimeType: "image/png", Filename: "scan.png"},
		},
	}

	assert.Equal(t, "", ExtractBody(payload))
	assert.Equal(t, "", ExtractBody(nil))
}

func TestDecodeBody(t *testing.T) {
	assert.Equal(t, "Hello World", decodeBody("SGVsbG8gV29ybGQ="))

	// Gmail sends unpadded url-safe base64.
	unpadded := base64.RawURLEncoding.EncodeToString([]byte("no padding here"))
	assert.Equal(t, "no padding here", decodeBody(unpadded))

	// Malformed input degrades to empty, never panics.
	assert.Equal(t, "", decodeBody("!!!not base64!!!"))
}

func TestHasAttachment(t *testing.T) {
	withAttachment := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: encodeBody("see attached")},
			{
				MimeType: "multipart/related",
				Parts: []*gmail.MessagePart{
					{MimeType: "application/pdf", Filename: "call-letter.pdf"},
				},
			},
		},
	}
	assert.True(t, hasAttachment(withAttachment))

	without := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     encodeBody("no attachments"),
	}
	assert.False(t, hasAttachment(without))
}
