package constant

const (
	ChatSystemPrompt = `You are a helpful and friendly AI assistant named Lexi.

Continue the conversation naturally. Answer the user's latest message using the
conversation history for context. Keep answers clear and well formatted.`

	// ThinkLongerInstruction is appended to the system prompt when the user
	// spends one of their daily think-longer uses.
	ThinkLongerInstruction = `Take your time with this request. Reason step by step and produce a longer,
more detailed and carefully structured response than usual.`

	// DocumentContextTemplate wraps extracted document text injected into the
	// prompt. The document always precedes the user's message.
	DocumentContextTemplate = `The user attached a document. Its extracted text is below. Use it to answer.

--- DOCUMENT START ---
%s
--- DOCUMENT END ---`

	ToneInstructionTemplate = `Respond in a %s tone.`

	ExplainPrompt = `You are an AI assistant designed to provide structured explanations of various
types of content.

Based on the provided input, generate a detailed and well-formatted explanation.
Summarize the content, identify key information, and provide step-by-step
reasoning to aid understanding.

If explaining code, provide debugging steps and potential solutions.
If explaining a document, reference specific sections or pages.
If explaining a message, provide context and elaborate on the key points.

Input: %s`

	SuggestionPrompt = `You are a chatbot assistant that is helpful and friendly.

Generate a list of example questions a user might ask to start a conversation
and explore the chatbot's capabilities. These questions should be diverse and
engaging.

Return the questions as a JSON array of strings. Do not include any other text
or formatting.`
)

// FallbackSuggestions is served whenever the suggestions collaborator fails
// or returns something unusable.
var FallbackSuggestions = []string{
	"What is Next.js?",
	"Explain server components.",
	"How does Tailwind CSS work?",
	"What are React Hooks?",
}
