// internal/domain/homework/parse.go
package homework

import (
	"errors"
	"fmt"
)

// ErrMissingHomeworkName is returned when an entry has no usable homework_name.
var ErrMissingHomeworkName = errors.New("homework entry has no homework_name")

// StatusError reports a missing or unknown homework status.
type StatusError struct {
	Name   string
	Status Status
}

func (e *StatusError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("homework %q has no status", e.Name)
	}
	return fmt.Sprintf("unknown status %q for homework %q", e.Status, e.Name)
}

const transitionFormat = `Изменился статус проверки работы "%s". %s`

// ParseStatus compares item against the table. When the status differs from
// the last one stored for the same name, the table is updated and the
// notification text is returned with changed set to true. An unchanged status
// yields ("", false, nil) and leaves the table untouched, as does any error.
func ParseStatus(table *StatusTable, item Item) (message string, changed bool, err error) {
	if item.Name == "" {
		return "", false, ErrMissingHomeworkName
	}
	verdict, ok := item.Status.Verdict()
	if !ok {
		return "", false, &StatusError{Name: item.Name, Status: item.Status}
	}

	if prev, seen := table.Get(item.Name); seen && prev == item.Status {
		return "", false, nil
	}

	table.Set(item.Name, item.Status)
	return fmt.Sprintf(transitionFormat, item.Name, verdict), true, nil
}
