// internal/app/validator.go
package app

import (
	"encoding/json"
	"fmt"
	"math"

	"homework_status_bot/internal/domain/homework"
)

const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
	keyName        = "homework_name"
	keyStatus      = "status"
)

// ValidationReason tells which shape rule an API answer broke.
type ValidationReason string

const (
	ReasonWrongShape     ValidationReason = "WRONG_SHAPE"
	ReasonMissingKey     ValidationReason = "MISSING_KEY"
	ReasonWrongFieldType ValidationReason = "WRONG_FIELD_TYPE"
)

// ValidationError reports an API answer that does not match the documented shape.
type ValidationError struct {
	Reason ValidationReason
	Key    string // set for MISSING_KEY and WRONG_FIELD_TYPE
	Got    string // Go type of the offending value
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingKey:
		return fmt.Sprintf("API answer has no %q key", e.Key)
	case ReasonWrongFieldType:
		return fmt.Sprintf("API answer field %q is %s, expected a list", e.Key, e.Got)
	default:
		return fmt.Sprintf("API answer is %s, expected an object", e.Got)
	}
}

// Response is a validated API answer. Homeworks keeps the upstream order.
type Response struct {
	Homeworks []homework.Item
	// CurrentDate is the next cursor; HasCurrentDate is false when the
	// value is not an integer.
	CurrentDate    int64
	HasCurrentDate bool
}

// CheckResponse verifies that answer is an object with both the homeworks
// and current_date keys and that homeworks is a list. The input is not modified.
func CheckResponse(answer any) (*Response, error) {
	obj, ok := answer.(map[string]any)
	if !ok {
		return nil, &ValidationError{Reason: ReasonWrongShape, Got: typeName(answer)}
	}
	for _, key := range []string{keyHomeworks, keyCurrentDate} {
		if _, ok := obj[key]; !ok {
			return nil, &ValidationError{Reason: ReasonMissingKey, Key: key}
		}
	}
	list, ok := obj[keyHomeworks].([]any)
	if !ok {
		return nil, &ValidationError{Reason: ReasonWrongFieldType, Key: keyHomeworks, Got: typeName(obj[keyHomeworks])}
	}

	resp := &Response{Homeworks: make([]homework.Item, 0, len(list))}
	for _, raw := range list {
		resp.Homeworks = append(resp.Homeworks, toItem(raw))
	}
	resp.CurrentDate, resp.HasCurrentDate = toInt64(obj[keyCurrentDate])
	return resp, nil
}

// toItem keeps whatever it can read; ParseStatus rejects incomplete items.
func toItem(raw any) homework.Item {
	fields, _ := raw.(map[string]any)
	name, _ := fields[keyName].(string)
	status, _ := fields[keyStatus].(string)
	return homework.Item{Name: name, Status: homework.Status(status), Fields: fields}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
