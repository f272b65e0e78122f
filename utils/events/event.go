package events

// LetterEventType enumerates workflow moments worth notifying about.
type LetterEventType string

const (
	// DispositionAssigned is published when a disposition routes an incoming
	// letter to an assignee.
	DispositionAssigned LetterEventType = "DispositionAssigned"

	// ApprovalRequested is published when an outgoing letter is submitted
	// and enters the pending state.
	ApprovalRequested LetterEventType = "ApprovalRequested"

	// ApprovalDecided is published after an approve or reject action.
	ApprovalDecided LetterEventType = "ApprovalDecided"

	// LetterSent is published when an approved outgoing letter is sent.
	LetterSent LetterEventType = "LetterSent"
)

// LetterEvent is the notification payload. Only plain identifiers cross the
// bus so the consumer never holds stale ORM state.
type LetterEvent struct {
	Type            LetterEventType
	OrganizationID  uint
	LetterID        uint
	ReferenceNumber string
	Subject         string
	Status          string

	// TargetUserID is the user the notification is addressed to: the
	// disposition assignee, the letter author on decisions, or zero for
	// role-wide fan-out (approval requests go to leadership).
	TargetUserID uint
}

// LetterEventBus is buffered so publishing from a request handler never
// blocks on the notifier.
var LetterEventBus = make(chan LetterEvent, 100)

// Publish drops the event when the bus is full rather than stalling the
// request path.
func Publish(e LetterEvent) {
	select {
	case LetterEventBus <- e:
	default:
	}
}
