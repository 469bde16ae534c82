package domain

import "fmt"

// Status is the error payload of a failed operation.
type Status struct {
	Code    int              `json:"code,omitempty" yaml:"code,omitempty"`
	Message string           `json:"message,omitempty" yaml:"message,omitempty"`
	Details []map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// String formats the status for messages.
func (s *Status) String() string {
	if s == nil {
		return ""
	}
	if s.Message == "" {
		return fmt.Sprintf("code %d", s.Code)
	}
	return fmt.Sprintf("code %d: %s", s.Code, s.Message)
}

// Operation is a long-running operation handle returned by create, import
// and delete calls. It only lives for the duration of one command.
type Operation struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Done     bool           `json:"done,omitempty" yaml:"done,omitempty"`
	Error    *Status        `json:"error,omitempty" yaml:"error,omitempty"`
	Response map[string]any `json:"response,omitempty" yaml:"response,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Failed returns true if the operation completed with an error.
func (o *Operation) Failed() bool {
	return o.Done && o.Error != nil
}

// ResponseName returns response.name when it is a non-empty string.
func (o *Operation) ResponseName() (string, bool) {
	if o.Response == nil {
		return "", false
	}
	name, ok := o.Response["name"].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// DeleteStatus values reported by delete commands.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DeleteResult is the structured outcome of a delete call.
type DeleteResult struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// OK returns true if the deletion succeeded.
func (r DeleteResult) OK() bool {
	return r.Status == StatusSuccess
}
