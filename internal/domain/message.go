package domain

// InboundMessage is one message event delivered by the transport
type InboundMessage struct {
	ChatID string
	Text   string
	// Name is the sender's display name when the transport knows it
	Name string
}

// Reply is an outbound text message
type Reply struct {
	Message string
}

// HandoffRequest carries the triggering event and its user to the handoff channel
type HandoffRequest struct {
	Event InboundMessage
	User  User
}

// Outcome is the single result the dispatch pipeline produces for a message
type Outcome string

const (
	OutcomeNamePrompt        Outcome = "name_prompt"
	OutcomeNameInvalid       Outcome = "name_invalid"
	OutcomeHandoffForwarded  Outcome = "handoff_forwarded"
	OutcomeHandoffOpened     Outcome = "handoff_opened"
	OutcomeHandoffSuppressed Outcome = "handoff_suppressed"
	OutcomeMenuNext          Outcome = "menu_next"
	OutcomeMenuHome          Outcome = "menu_home"
	OutcomeInvalidOption     Outcome = "invalid_option"
)
