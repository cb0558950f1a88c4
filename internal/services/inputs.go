package services

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Roles is the roles field of a user request. A JSON array is kept in
// Values, with numbers and booleans cast to their text. A non-empty
// string sets Malformed, which create treats as "use the default roles".
// Every other value leaves Roles empty, so validation rejects it.
type Roles struct {
	Values    []string
	Malformed bool
}

// NewRoles builds a Roles input from a list of labels.
func NewRoles(values ...string) Roles {
	return Roles{Values: values}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Roles) UnmarshalJSON(data []byte) error {
	*r = Roles{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.Malformed = s != ""
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(data, &elems); err != nil {
			return err
		}
		values := make([]string, 0, len(elems))
		for _, elem := range elems {
			v, ok := roleLabel(elem)
			if !ok {
				return nil
			}
			values = append(values, v)
		}
		r.Values = values
	}
	return nil
}

// roleLabel casts one array element to a label. Only strings, numbers and
// booleans have a text form.
func roleLabel(elem json.RawMessage) (string, bool) {
	var v interface{}
	if err := json.Unmarshal(elem, &v); err != nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// MarshalJSON implements json.Marshaler.
func (r Roles) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values)
}

// IsList reports whether a non-empty list of labels was supplied.
func (r Roles) IsList() bool {
	return len(r.Values) > 0
}

// CreateUserInput is the body of a user create request.
type CreateUserInput struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required"`
	Phone      string   `json:"phone" validate:"required"`
	Building   float64  `json:"building" validate:"required"`
	Appartment float64  `json:"appartment" validate:"required"`
	Password   string   `json:"password" validate:"required"`
	Roles      Roles    `json:"roles"`
	Debt       *float64 `json:"debt" validate:"required"`
}

// UpdateUserInput is the body of a user update request. Every field
// except Password is required; the update replaces the whole record.
type UpdateUserInput struct {
	ID         string   `json:"id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required"`
	Phone      string   `json:"phone" validate:"required"`
	Building   float64  `json:"building" validate:"required"`
	Appartment float64  `json:"appartment" validate:"required"`
	Password   string   `json:"password"`
	Roles      Roles    `json:"roles"`
	Debt       *float64 `json:"debt" validate:"required"`
	Active     *bool    `json:"active" validate:"required"`
}

// CreateReportInput is the body of a report create request.
type CreateReportInput struct {
	User  string `json:"user" validate:"required"`
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// UpdateReportInput is the body of a report update request.
type UpdateReportInput struct {
	ID        string `json:"id" validate:"required"`
	User      string `json:"user" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text" validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
}

// DeleteInput is the body of a delete request.
type DeleteInput struct {
	ID string `json:"id"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
