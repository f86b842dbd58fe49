package boxcar

import "net/http"

// UnknownErrorCode is the Code of a Result whose failure carried no HTTP status.
const UnknownErrorCode = -1

const (
	DescIncorrectParameters = "Incorrect parameters passed"
	DescUnauthorized        = "Request failed (possible causes: invalid token, or user has not added the service, or notification id sent twice)"
	DescForbidden           = "Request failed (General)"
	DescUserNotFound        = "User not found"
	DescUnknownResponse     = "Unknown response"

	unknownErrorPrefix = "Unknown Error : "
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeStatus means Boxcar answered with a non-2xx status.
	OutcomeStatus
	// OutcomeUnknown means no usable answer was received.
	OutcomeUnknown
)

var outcomeName = map[Outcome]string{
	OutcomeSuccess: "success",
	OutcomeStatus:  "status",
	OutcomeUnknown: "unknown",
}

func (o Outcome) String() string {
	return outcomeName[o]
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of one API call. Code is 0 on success, the HTTP
// status for status failures and UnknownErrorCode otherwise. Response holds
// the raw body of a successful call and Description explains a failed one.
type Result struct {
	Kind        Outcome `json:"kind"`
	Success     bool    `json:"success"`
	Code        int     `json:"code"`
	Description string  `json:"description,omitempty"`
	Response    string  `json:"response,omitempty"`
}

func success(body string) Result {
	return Result{
		Kind:     OutcomeSuccess,
		Success:  true,
		Response: body,
	}
}

func statusFailure(code int) Result {
	return Result{
		Kind:        OutcomeStatus,
		Code:        code,
		Description: describeStatus(code),
	}
}

func unknownError(err error) Result {
	return Result{
		Kind:        OutcomeUnknown,
		Code:        UnknownErrorCode,
		Description: unknownErrorPrefix + causeMessage(err),
	}
}

func describeStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return DescIncorrectParameters
	case http.StatusUnauthorized:
		return DescUnauthorized
	case http.StatusForbidden:
		return DescForbidden
	case http.StatusNotFound:
		return DescUserNotFound
	default:
		return DescUnknownResponse
	}
}
