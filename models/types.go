package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type PhoneType string

const (
	PhoneTypeSmart PhoneType = "Smart Phone"
	PhoneTypeBasic PhoneType = "Basic Phone"
)

func (p PhoneType) Valid() bool {
	return p == PhoneTypeSmart || p == PhoneTypeBasic
}

type CandidateStatus string

const (
	StatusActive   CandidateStatus = "Active"
	StatusInactive CandidateStatus = "Inactive"
)

func (s CandidateStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// StringList is an ordered list of labels stored as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}
