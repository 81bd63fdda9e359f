package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind classifies a transaction or category as expense or income.
	Kind string

	// ID is an opaque backend identifier. The backend is free to serialize
	// identifiers as JSON numbers or strings; both unmarshal into ID.
	ID string

	// Amount is a positive, currency-agnostic decimal. Some backends
	// serialize decimal fields as quoted strings; both forms unmarshal.
	Amount float64

	// When is a transaction timestamp. Records may carry a full timestamp
	// or a bare calendar date; both forms unmarshal.
	When struct {
		time.Time
	}

	// Transaction is a single expense or income record. The kind is not
	// present on raw records fetched from the per-kind sub-resources and
	// is tagged client-side.
	Transaction struct {
		ID           ID     `json:"id,omitempty"`
		Kind         Kind   `json:"type,omitempty"`
		Amount       Amount `json:"amount"`
		Description  string `json:"description"`
		Date         When   `json:"date"`
		CategoryID   ID     `json:"category,omitempty"`
		CategoryName string `json:"category_name,omitempty"`
	}

	// Category scopes a display name to a kind. Names are unique per kind,
	// matched case-insensitively.
	Category struct {
		ID   ID     `json:"id"`
		Name string `json:"name"`
		Kind Kind   `json:"type"`
	}

	// User is the authenticated profile returned by the backend.
	User struct {
		ID         ID     `json:"id,omitempty"`
		Username   string `json:"username,omitempty"`
		FirstName  string `json:"first_name,omitempty"`
		Nickname   string `json:"nickname,omitempty"`
		Email      string `json:"email,omitempty"`
		ProfilePic string `json:"profile_pic,omitempty"`
	}
)

var (
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDate        = errors.New("empty date")
)

func (k Kind) Valid() bool {
	return k == Expense || k == Income
}

func (k Kind) Validate() error {
	if !k.Valid() {
		return ErrInvalidKind
	}
	return nil
}

func (id ID) IsZero() bool {
	return id == ""
}

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric identifiers unquoted so that backends using
// integer primary keys round-trip unchanged.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return ErrInvalidAmount
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(a), 'f', -1, 64)), nil
}

func (a Amount) Validate() error {
	if a <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

const dateOnlyLayout = "2006-01-02"

// whenLayouts lists accepted timestamp formats, tried in order.
var whenLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	dateOnlyLayout,
}

func (w *When) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		w.Time = time.Time{}
		return nil
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			w.Time = t
			return nil
		}
	}
	return errors.New("unrecognized date format: " + s)
}

func (w When) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.UTC().Format(time.RFC3339Nano))
}

// categoryWire mirrors the field names different backend versions have used
// for the category kind.
type categoryWire struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Type         Kind   `json:"type"`
	Kind         Kind   `json:"kind"`
	CategoryType Kind   `json:"category_type"`
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var w categoryWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	kind := w.Type
	if kind == "" {
		kind = w.Kind
	}
	if kind == "" {
		kind = w.CategoryType
	}
	c.ID = w.ID
	c.Name = w.Name
	c.Kind = Kind(strings.ToLower(string(kind)))
	return nil
}

// MatchesName reports whether the category's name equals s ignoring case.
func (c Category) MatchesName(s string) bool {
	return strings.EqualFold(c.Name, s)
}

// DisplayName picks the friendliest available label for greetings.
func (u User) DisplayName() string {
	switch {
	case u.Nickname != "":
		return u.Nickname
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	}
	return "User"
}
