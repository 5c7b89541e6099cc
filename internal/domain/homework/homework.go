// internal/domain/homework/homework.go
package homework

// Status is the review state reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

var verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human-readable text for a known status.
func (s Status) Verdict() (string, bool) {
	v, ok := verdicts[s]
	return v, ok
}

// Known reports whether s is one of the statuses the bot can describe.
func (s Status) Known() bool {
	_, ok := verdicts[s]
	return ok
}

// Item is one entry of the "homeworks" list. Name is the identity of the
// homework; Fields keeps the raw entry as received, other keys are not used.
type Item struct {
	Name   string
	Status Status
	Fields map[string]any
}
