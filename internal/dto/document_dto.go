package dto

// ParseDocumentResponse carries the extracted text of the single parsed
// document in an upload batch. Skipped lists non-image files that were
// attached without extraction per the first-document-only policy.
type ParseDocumentResponse struct {
	Text     string   `json:"text"`
	ParsedId string   `json:"parsed_id,omitempty"`
	Skipped  []string `json:"skipped,omitempty"`
}
