package domain

// ChatMessage is the provider-agnostic chat message shape used by prompt
// assembly and the chat-completions integration.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound body posted by the chat widget.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the only value returned to the client, on success and failure alike.
type ChatReply struct {
	Reply string `json:"reply"`
}
