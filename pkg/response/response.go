package response

type ErrorResponse struct {
	Error       string `json:"error"`
	ComponentID *uint  `json:"componentId,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Payload carries a message together with the operation's result.
type Payload struct {
	Message string `json:"message"`
	Value   any    `json:"value"`
}
