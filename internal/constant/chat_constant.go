package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// DefaultChatTitle is the placeholder a fresh session carries until its
	// first user message arrives.
	DefaultChatTitle   = "New Chat"
	PrivateChatTitle   = "Private Chat"
	ChatTitleMaxLength = 30

	// HistoryWindow bounds how many trailing messages are replayed to the
	// model on each request.
	HistoryWindow = 10

	// ThinkLongerDailyLimit caps think-longer invocations per calendar day
	// per client profile.
	ThinkLongerDailyLimit = 5

	// ThinkLongerMaxTokens relaxes the output ceiling for think-longer
	// requests; StandardMaxTokens applies otherwise.
	StandardMaxTokens    = 1024
	ThinkLongerMaxTokens = 4096
)

// Request categories gated by the session store's request-state machines.
// One standard send and one think-longer request may be outstanding at the
// same time; a second request of the same category is rejected.
const (
	RequestCategorySend        = "send"
	RequestCategoryThinkLonger = "think_longer"
	RequestCategoryExplain     = "explain"
)
