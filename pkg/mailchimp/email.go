package mailchimp

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// EmailParameter identifies a subscriber. Exactly one of the fields must be set:
// the address itself, the account-wide unique id (euid) or the list-specific
// id (leid).
type EmailParameter struct {
	Email string `json:"email,omitempty"`
	EUID  string `json:"euid,omitempty"`
	LEID  string `json:"leid,omitempty"`
}

// Validate checks that exactly one identifying field is set. Blank values
// count as unset.
func (e EmailParameter) Validate() error {
	set := 0
	for _, v := range []string{e.Email, e.EUID, e.LEID} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	switch set {
	case 0:
		return ErrNoEmailIdentifier
	case 1:
		return nil
	default:
		return ErrAmbiguousEmailIdentifier
	}
}

// String returns whichever identifier is set.
func (e EmailParameter) String() string {
	switch {
	case e.Email != "":
		return e.Email
	case e.EUID != "":
		return "euid:" + e.EUID
	case e.LEID != "":
		return "leid:" + e.LEID
	}
	return ""
}

// Grouping selects interest groups for a member, by grouping id or name.
type Grouping struct {
	ID     int      `json:"id,omitempty"`
	Name   string   `json:"name,omitempty"`
	Groups []string `json:"groups"`
}

// MergeVars holds the merge values for a member. Fields carries the list's own
// merge tags (FNAME, LNAME, ...); the named fields map to the reserved keys.
type MergeVars struct {
	// NewEmail changes the member's address on UpdateMember.
	NewEmail   string
	Groupings  []Grouping
	OptinIP    string
	OptinTime  string
	MCLocation *MCLocation
	MCLanguage string
	MCNotes    []MCNote
	Fields     map[string]any
}

// MCLocation sets a member's location.
type MCLocation struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Anywhere  string `json:"anywhere,omitempty"`
}

// MCNote adds or updates a note on a member.
type MCNote struct {
	Note   string `json:"note,omitempty"`
	ID     int    `json:"id,omitempty"`
	Action string `json:"action,omitempty"`
}

// MarshalJSON flattens Fields next to the reserved keys.
func (m MergeVars) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Fields)+7)
	maps.Copy(out, m.Fields)
	if m.NewEmail != "" {
		out["new-email"] = m.NewEmail
	}
	if len(m.Groupings) > 0 {
		out["groupings"] = m.Groupings
	}
	if m.OptinIP != "" {
		out["optin_ip"] = m.OptinIP
	}
	if m.OptinTime != "" {
		out["optin_time"] = m.OptinTime
	}
	if m.MCLocation != nil {
		out["mc_location"] = m.MCLocation
	}
	if m.MCLanguage != "" {
		out["mc_language"] = m.MCLanguage
	}
	if len(m.MCNotes) > 0 {
		out["mc_notes"] = m.MCNotes
	}
	return json.Marshal(out)
}

// BatchEmailParameter is one record of a BatchSubscribe call.
type BatchEmailParameter struct {
	Email     EmailParameter `json:"email"`
	EmailType string         `json:"email_type,omitempty"`
	MergeVars *MergeVars     `json:"merge_vars,omitempty"`
}

// BatchError reports why one item of a batch call failed.
type BatchError struct {
	Email   EmailParameter `json:"email"`
	Code    int            `json:"code"`
	Message string         `json:"error"`
}

func (e BatchError) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", e.Email, e.Message, e.Code)
}

// UnmarshalJSON accepts the email either as a struct or as a bare address;
// older endpoints return the latter.
func (e *BatchError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Email   json.RawMessage `json:"email"`
		Code    int             `json:"code"`
		Message string          `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Code = raw.Code
	e.Message = raw.Message
	e.Email = EmailParameter{}
	if len(raw.Email) == 0 || string(raw.Email) == "null" {
		return nil
	}
	var address string
	if err := json.Unmarshal(raw.Email, &address); err == nil {
		e.Email.Email = address
		return nil
	}
	return json.Unmarshal(raw.Email, &e.Email)
}

func batchErrors(errs []BatchError) error {
	if len(errs) == 0 {
		return nil
	}
	list := make([]error, 0, len(errs))
	for _, e := range errs {
		list = append(list, e)
	}
	return utilerrors.NewAggregate(list)
}

func rejected(email EmailParameter, err error) BatchError {
	return BatchError{Email: email, Code: validationErrorCode, Message: err.Error()}
}

// partitionEmails splits emails into those that may be sent and the
// client-side rejections for the rest.
func partitionEmails(emails []EmailParameter) ([]EmailParameter, []BatchError) {
	valid := make([]EmailParameter, 0, len(emails))
	var rejects []BatchError
	for _, e := range emails {
		if err := e.Validate(); err != nil {
			rejects = append(rejects, rejected(e, err))
			continue
		}
		valid = append(valid, e)
	}
	return valid, rejects
}

func partitionBatch(batch []BatchEmailParameter) ([]BatchEmailParameter, []BatchError) {
	valid := make([]BatchEmailParameter, 0, len(batch))
	var rejects []BatchError
	for _, b := range batch {
		if err := b.Email.Validate(); err != nil {
			rejects = append(rejects, rejected(b.Email, err))
			continue
		}
		valid = append(valid, b)
	}
	return valid, rejects
}
