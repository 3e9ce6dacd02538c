package domain

// Question is one onboarding question of a robot
type Question struct {
	ID       int64
	RobotID  int64
	Position int
	Text     string
}

// RegistrationState tags the progress of a registration run
type RegistrationState int

const (
	RegistrationNotStarted RegistrationState = iota
	RegistrationInProgress
	RegistrationFinished
)

func (s RegistrationState) String() string {
	switch s {
	case RegistrationNotStarted:
		return "not_started"
	case RegistrationInProgress:
		return "in_progress"
	case RegistrationFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Registration is the in-flight onboarding run of one user.
// Questions is the snapshot taken when the run was created.
type Registration struct {
	UserID    int64
	Questions []Question
	State     RegistrationState
	Index     int
}

// NewRegistration starts a run over a snapshot of questions
func NewRegistration(userID int64, questions []Question) *Registration {
	snapshot := make([]Question, len(questions))
	copy(snapshot, questions)
	return &Registration{
		UserID:    userID,
		Questions: snapshot,
		State:     RegistrationNotStarted,
	}
}

// Current returns the question awaiting an answer
func (r *Registration) Current() (Question, bool) {
	if r.State != RegistrationInProgress || r.Index >= len(r.Questions) {
		return Question{}, false
	}
	return r.Questions[r.Index], true
}

// Remaining returns how many inbound messages the run still consumes
func (r *Registration) Remaining() int {
	switch r.State {
	case RegistrationNotStarted:
		return len(r.Questions) + 1
	case RegistrationInProgress:
		return len(r.Questions) - r.Index
	default:
		return 0
	}
}

// RegistrationStatus is the result of advancing a registration
type RegistrationStatus string

const (
	RegistrationContinue RegistrationStatus = "continue"
	RegistrationFinish   RegistrationStatus = "finish"
)
