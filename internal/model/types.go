package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// IDList is an ordered list of entity references stored as a JSONB array of UUID strings.
type IDList []uuid.UUID

// Scan implements sql.Scanner for JSONB columns.
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB id list: unexpected type")
	}

	if len(bytes) == 0 {
		*l = IDList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Value implements driver.Valuer. A nil list is stored as an empty array, never NULL.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l IDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (l IDList) Without(id uuid.UUID) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// ParseIDList normalizes raw identifier strings to UUIDs, keeping their order.
func ParseIDList(raw []string) (IDList, error) {
	out := make(IDList, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

type Alternative struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Alternatives keeps a question's answer options, in order, in a single JSONB column.
type Alternatives []Alternative

func (a *Alternatives) Scan(value interface{}) error {
	if value == nil {
		*a = Alternatives{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB alternatives: unexpected type")
	}

	if len(bytes) == 0 {
		*a = Alternatives{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

func (a Alternatives) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// CorrectCount reports how many alternatives are flagged as correct.
func (a Alternatives) CorrectCount() int {
	n := 0
	for _, alt := range a {
		if alt.IsCorrect {
			n++
		}
	}
	return n
}
