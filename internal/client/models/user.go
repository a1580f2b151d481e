// Package models defines the client-side records exchanged with the Polygame
// backend. Field names follow the backend's JSON encoding.
package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile is the user record returned by the auth and profile endpoints.
//
// The session layer treats it as opaque: the document it was decoded from is
// kept in Raw and written back verbatim by MarshalJSON, so fields unknown to
// this client survive a persist/restore cycle. The typed fields are a
// best-effort view for display; a field whose shape does not fit is left at
// its zero value and never fails the decode.
type UserProfile struct {
	ID             ID              `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	VirtualBalance decimal.Decimal `json:"virtual_balance"`
	Avatar         string          `json:"avatar"`
	IsAdmin        bool            `json:"is_admin"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Raw json.RawMessage `json:"-"`
}

// userProfileFields breaks the MarshalJSON recursion.
type userProfileFields UserProfile

func (u *UserProfile) UnmarshalJSON(b []byte) error {
	*u = UserProfile{Raw: append(json.RawMessage(nil), bytes.TrimSpace(b)...)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		// Not an object: nothing to view, the raw document is still kept.
		return nil
	}

	decodeField(fields, "id", &u.ID)
	decodeField(fields, "username", &u.Username)
	decodeField(fields, "email", &u.Email)
	decodeField(fields, "virtual_balance", &u.VirtualBalance)
	decodeField(fields, "avatar", &u.Avatar)
	decodeField(fields, "is_admin", &u.IsAdmin)
	decodeField(fields, "created_at", &u.CreatedAt)
	decodeField(fields, "updated_at", &u.UpdatedAt)
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if json.Unmarshal(raw, &v) == nil {
		*dst = v
	}
}

func (u UserProfile) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	return json.Marshal(userProfileFields(u))
}
