package mailchimp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error represents an error returned by the MailChimp API.
//
// The API reports failures with a JSON body of the form
// {"status":"error","code":232,"name":"Email_NotExists","error":"..."}.
type Error struct {
	StatusCode int
	Code       int
	Name       string
	Message    string
	Body       string
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("api request failed with status %d: %s (code %d): %s", e.StatusCode, e.Name, e.Code, e.Message)
}

// Client-side validation errors. These are returned before any request is sent.
var (
	ErrNoEmailIdentifier        = errors.New("email parameter requires one of email, euid or leid")
	ErrAmbiguousEmailIdentifier = errors.New("email parameter must set only one of email, euid or leid")
	ErrNilCampaignUpdate        = errors.New("campaign update is required")
	ErrEmptyGroupingUpdate      = errors.New("grouping update is required")
)

// Well known error names returned by the API.
const (
	ErrorNameValidation        = "ValidationError"
	ErrorNameInvalidAPIKey     = "Invalid_ApiKey"
	ErrorNameListDoesNotExist  = "List_DoesNotExist"
	ErrorNameEmailNotExists    = "Email_NotExists"
	ErrorNameAlreadySubscribed = "List_AlreadySubscribed"
	ErrorNameNotSubscribed     = "List_NotSubscribed"
	ErrorNameCampaignNotExists = "Campaign_DoesNotExist"
)

// validationErrorCode is the code the API uses for ValidationError. Items
// rejected before sending reuse it.
const validationErrorCode = -100

// parseError returns a typed error when the response signals failure, or nil.
func parseError(statusCode int, body []byte) error {
	isErrorBody := gjson.GetBytes(body, "status").String() == "error"
	if statusCode < http.StatusBadRequest && !isErrorBody {
		return nil
	}

	apiErr := &Error{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	if gjson.ValidBytes(body) {
		apiErr.Code = int(gjson.GetBytes(body, "code").Int())
		apiErr.Name = gjson.GetBytes(body, "name").String()
		apiErr.Message = gjson.GetBytes(body, "error").String()
	}
	return apiErr
}

func asError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// isErrorStatus checks if the error is a MailChimp API error with the given status code.
func isErrorStatus(err error, status int) bool {
	if apiErr, ok := asError(err); ok {
		return apiErr.StatusCode == status
	}
	return false
}

// IsErrorName checks if the error is a MailChimp API error with the given name.
func IsErrorName(err error, name string) bool {
	if apiErr, ok := asError(err); ok {
		return apiErr.Name == name
	}
	return false
}

// IsNotFound checks if the error reports a missing entity, either as a 404
// or as one of the *_DoesNotExist / *_NotExists error names.
func IsNotFound(err error) bool {
	apiErr, ok := asError(err)
	if !ok {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound ||
		strings.HasSuffix(apiErr.Name, "_DoesNotExist") ||
		strings.HasSuffix(apiErr.Name, "_NotExists")
}

// IsBadRequest checks if the error represents a 400 Bad Request response or a
// ValidationError.
func IsBadRequest(err error) bool {
	return isErrorStatus(err, http.StatusBadRequest) || IsValidationError(err)
}

// IsValidationError checks if the API rejected the parameters.
func IsValidationError(err error) bool {
	return IsErrorName(err, ErrorNameValidation)
}

// IsInvalidAPIKey checks if the API key was rejected.
func IsInvalidAPIKey(err error) bool {
	return IsErrorName(err, ErrorNameInvalidAPIKey) || isErrorStatus(err, http.StatusUnauthorized)
}

// IsAlreadySubscribed checks if a subscribe failed because the member exists.
func IsAlreadySubscribed(err error) bool {
	return IsErrorName(err, ErrorNameAlreadySubscribed)
}

// IsNotSubscribed checks if an unsubscribe targeted an address that is not
// subscribed to the list.
func IsNotSubscribed(err error) bool {
	return IsErrorName(err, ErrorNameNotSubscribed)
}
