package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure classes surfaced to the user, in
// priority order of classification.
type ErrorKind int

const (
	// KindPrecondition is a local guard violation; no network call was made.
	KindPrecondition ErrorKind = iota
	// KindTimeout means the upload got no response within its deadline.
	KindTimeout
	// KindServer carries a message the backend reported, shown verbatim.
	KindServer
	// KindStatus is the generic interpretation of an HTTP status when the
	// body carried no structured message.
	KindStatus
	// KindConnectivity means no response was received at all.
	KindConnectivity
	// KindValidation is a local failure on user-edited data; never sent.
	KindValidation
)

type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

func IsKind(err error, kind ErrorKind) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == kind
}

// serverMessage digs a human-readable message out of an error body. The
// backends are inconsistent about the field name.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, msg := range []string{payload.Error, payload.Detail, payload.Message} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// classifyStatus turns a non-2xx response into an Error. A structured body
// message wins over status-code interpretation.
func classifyStatus(status int, body []byte, fallback string) *Error {
	if msg := serverMessage(body); msg != "" {
		return &Error{Kind: KindServer, Message: msg, Status: status}
	}
	switch {
	case status >= 500:
		return &Error{Kind: KindStatus, Message: "the service reported an internal error, try again", Status: status}
	case status == 400:
		return &Error{Kind: KindStatus, Message: "the document appears invalid or unsupported", Status: status}
	default:
		return &Error{Kind: KindStatus, Message: fmt.Sprintf("%s (status %d)", fallback, status), Status: status}
	}
}
