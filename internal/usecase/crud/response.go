package crud

import "net/http"

// Status codes surfaced by the response envelope.
const (
	StatusOK                 = http.StatusOK
	StatusCreated            = http.StatusCreated
	StatusBadRequest         = http.StatusBadRequest
	StatusInvalidCredentials = http.StatusUnauthorized
	StatusResourceError      = http.StatusNotFound
	StatusConflict           = http.StatusConflict
	StatusTooManyRequests    = http.StatusTooManyRequests
	StatusSystemError        = http.StatusInternalServerError
)

// Response is the envelope returned by every use-case operation.
// Its only implementations are Success and Failure.
type Response interface {
	StatusCode() int
	Body() any
	sealed()
}

// Success is a completed operation and its payload.
type Success struct {
	Status  int
	Payload any
}

// ErrorPayload is the body of every Failure. Message is either a string or a
// list of FieldError.
type ErrorPayload struct {
	Message any `json:"message"`
}

// Failure is a rejected operation.
type Failure struct {
	Status  int
	Payload ErrorPayload
}

// NewSuccess builds a Success; a zero status means 200.
func NewSuccess(status int, payload any) Success {
	if status == 0 {
		status = StatusOK
	}
	return Success{Status: status, Payload: payload}
}

// NewFailure builds a Failure whose payload is {message: raw}.
func NewFailure(status int, raw any) Failure {
	return Failure{Status: status, Payload: ErrorPayload{Message: raw}}
}

func (s Success) StatusCode() int { return s.Status }
func (s Success) Body() any       { return s.Payload }
func (Success) sealed()           {}

func (f Failure) StatusCode() int { return f.Status }
func (f Failure) Body() any       { return f.Payload }
func (Failure) sealed()           {}

// MatchResponse calls exactly one of onSuccess or onFailure.
func MatchResponse(r Response, onSuccess func(Success), onFailure func(Failure)) {
	switch v := r.(type) {
	case Success:
		onSuccess(v)
	case Failure:
		onFailure(v)
	}
}
