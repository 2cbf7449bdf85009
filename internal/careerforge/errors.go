package careerforge

import (
	"errors"
	"fmt"
)

// NetworkError wraps transport failures where no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a non-success response carrying the server-provided detail.
type RemoteError struct {
	Op     string
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: remote error: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: remote error: %s", e.Op, e.Detail)
}

// MalformedResponseError is a success response missing an expected field.
// Such responses are never partially consumed.
type MalformedResponseError struct {
	Op      string
	Missing string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: missing %q", e.Op, e.Missing)
}

// UserMessage turns any client error into a human-readable message suitable
// for an error banner, preferring the remote detail when one exists.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var remote *RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		return remote.Detail
	}

	return fallback
}
