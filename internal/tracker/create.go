package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

const (
	requestorFieldName = "Requestor"
	requestorFieldType = "SingleUserIssueCustomField"
)

// IssueDraft is the issue-creation payload. Fields the service does
// not interpret pass through untouched.
type IssueDraft struct {
	Project      json.RawMessage `json:"project,omitempty"`
	Summary      string          `json:"summary,omitempty"`
	Description  string          `json:"description,omitempty"`
	CustomFields []CustomField   `json:"customFields,omitempty"`
}

type CustomField struct {
	Name  string          `json:"name"`
	Type  string          `json:"$type,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

type userValue struct {
	Login string `json:"login"`
}

// CreateIssue files a new issue. Requestor logins come from the form
// as either an email or a bare login, and the tracker may know the
// user under either spelling, so creation degrades through three
// tiers: the payload as-is, the alternative login spelling, and
// finally no Requestor field with the email noted in the description.
func (c *Client) CreateIssue(ctx context.Context, draft IssueDraft) (json.RawMessage, error) {
	idx, login := requestorLogin(draft)
	if idx < 0 || login == "" {
		return c.Request(ctx, http.MethodPost, "/api/issues", draft)
	}

	data, err := c.Request(ctx, http.MethodPost, "/api/issues", draft)
	if err == nil || !isRetryableUserError(err) {
		return data, err
	}
	log.Printf("tracker: requestor %q not found, retrying with alternative login", login)

	// orgDomain carries its leading "@", e.g. "@example.com".
	alt := login + c.orgDomain
	if strings.Contains(login, "@") {
		alt = strings.SplitN(login, "@", 2)[0]
	}

	retry := draft
	retry.CustomFields = append([]CustomField(nil), draft.CustomFields...)
	altValue, _ := json.Marshal(userValue{Login: alt})
	retry.CustomFields[idx].Value = altValue

	data, err = c.Request(ctx, http.MethodPost, "/api/issues", retry)
	if err == nil || !isRetryableUserError(err) {
		return data, err
	}
	log.Printf("tracker: alternative requestor %q not found, filing without Requestor field", alt)

	email := login
	if !strings.Contains(email, "@") {
		email = login + c.orgDomain
	}
	final := draft
	final.CustomFields = make([]CustomField, 0, len(draft.CustomFields)-1)
	for i, f := range draft.CustomFields {
		if i != idx {
			final.CustomFields = append(final.CustomFields, f)
		}
	}
	final.Description = strings.TrimRight(final.Description, "\n") + "\n\n**Requested by:** " + email

	return c.Request(ctx, http.MethodPost, "/api/issues", final)
}

func requestorLogin(draft IssueDraft) (int, string) {
	for i, f := range draft.CustomFields {
		if f.Name == requestorFieldName && f.Type == requestorFieldType {
			var v userValue
			if err := json.Unmarshal(f.Value, &v); err != nil {
				return -1, ""
			}
			return i, v.Login
		}
	}
	return -1, ""
}

func isRetryableUserError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.retryableUserError()
}
