package llm

import "strings"

// SplitDataURI breaks a "data:<mime>;base64,<payload>" string into its mime
// type and raw base64 payload. Non data-URI input is returned as payload with
// an empty mime, which providers treat as already-encoded image bytes.
func SplitDataURI(uri string) (mimeType, payload string) {
	if !strings.HasPrefix(uri, "data:") {
		return "", uri
	}
	rest := strings.TrimPrefix(uri, "data:")
	idx := strings.Index(rest, ",")
	if idx < 0 {
		return "", uri
	}
	meta := rest[:idx]
	payload = rest[idx+1:]
	mimeType = strings.TrimSuffix(meta, ";base64")
	return mimeType, payload
}
