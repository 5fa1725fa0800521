package dto

type ExplainRequest struct {
	Text            string `json:"text,omitempty"`
	TargetMessageId string `json:"target_message_id,omitempty"`
	AttachmentId    string `json:"attachment_id,omitempty"`
}

type ExplainResponse struct {
	Explanation string `json:"explanation"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
	// Fallback is true when the hardcoded list was served because the
	// collaborator failed.
	Fallback bool `json:"fallback,omitempty"`
}
