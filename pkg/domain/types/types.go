package types

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CohortID represents a cohort identifier
type CohortID int

// String returns the string representation
func (id CohortID) String() string {
	return strconv.Itoa(int(id))
}

// Int returns the int representation
func (id CohortID) Int() int {
	return int(id)
}

// ParseCohortID parses a cohort identifier from its decimal form
func ParseCohortID(s string) (CohortID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid cohort ID", goerr.V("id", s))
	}
	if n < 0 {
		return 0, goerr.New("cohort ID must not be negative", goerr.V("id", s))
	}
	return CohortID(n), nil
}

// WikiUserID represents a wiki user identifier. The server may send it
// either as a JSON string or as a number.
type WikiUserID string

// String returns the string representation
func (id WikiUserID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric identifiers
func (id *WikiUserID) UnmarshalJSON(data []byte) error {
	s, err := unmarshalStringOrNumber(data)
	if err != nil {
		return goerr.Wrap(err, "failed to decode wiki user ID")
	}
	*id = WikiUserID(s)
	return nil
}

// MediawikiUserID is the numeric user id assigned by MediaWiki. Servers
// send it as a number, seed files and older exports as a string.
type MediawikiUserID string

// String returns the string representation
func (id MediawikiUserID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric user ids
func (id *MediawikiUserID) UnmarshalJSON(data []byte) error {
	s, err := unmarshalStringOrNumber(data)
	if err != nil {
		return goerr.Wrap(err, "failed to decode mediawiki user ID")
	}
	*id = MediawikiUserID(s)
	return nil
}

// unmarshalStringOrNumber decodes a JSON string or number into its text
// form. null decodes to "".
func unmarshalStringOrNumber(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", goerr.Wrap(err, "invalid JSON string")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", goerr.Wrap(err, "value must be a string or number",
			goerr.V("raw", string(data)))
	}
	return n.String(), nil
}

// RequestID correlates a client request with server logs
type RequestID string

// String returns the string representation
func (id RequestID) String() string {
	return string(id)
}

// NewRequestID creates a new RequestID
func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}
