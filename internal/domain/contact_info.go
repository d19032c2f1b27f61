package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ContactInfo is the open key-value bag extracted alongside a company name.
// Well-known keys get dedicated fields; anything else lands in Extra. Values
// that arrive as JSON null are dropped on decode so downstream merges stay
// clean.
type ContactInfo struct {
	Email   string            `json:"email,omitempty"`
	Phone   string            `json:"phone,omitempty"`
	Address string            `json:"address,omitempty"`
	Company string            `json:"company,omitempty"`
	Project string            `json:"project,omitempty"`
	City    string            `json:"city,omitempty"`
	Extra   map[string]string `json:"extra,omitempty"`
}

// FromMap routes an untyped key-value map into a ContactInfo, dropping null
// values and coercing everything else to strings.
func ContactInfoFromMap(m map[string]any) ContactInfo {
	var ci ContactInfo
	for k, v := range m {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(coerceString(v))
		if s == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "email", "eposta", "e-posta":
			ci.Email = s
		case "phone", "telefon", "tel":
			ci.Phone = s
		case "address", "adres":
			ci.Address = s
		case "company", "firma", "şirket", "sirket":
			ci.Company = s
		case "project", "proje":
			ci.Project = s
		case "city", "şehir", "sehir", "il":
			ci.City = s
		default:
			if ci.Extra == nil {
				ci.Extra = map[string]string{}
			}
			ci.Extra[k] = s
		}
	}
	return ci
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Merge overlays other onto the receiver; non-empty incoming values win.
func (ci *ContactInfo) Merge(other ContactInfo) {
	if other.Email != "" {
		ci.Email = other.Email
	}
	if other.Phone != "" {
		ci.Phone = other.Phone
	}
	if other.Address != "" {
		ci.Address = other.Address
	}
	if other.Company != "" {
		ci.Company = other.Company
	}
	if other.Project != "" {
		ci.Project = other.Project
	}
	if other.City != "" {
		ci.City = other.City
	}
	for k, v := range other.Extra {
		if ci.Extra == nil {
			ci.Extra = map[string]string{}
		}
		ci.Extra[k] = v
	}
}

// IsZero reports whether no field carries a value.
func (ci ContactInfo) IsZero() bool {
	return ci.Email == "" && ci.Phone == "" && ci.Address == "" &&
		ci.Company == "" && ci.Project == "" && ci.City == "" && len(ci.Extra) == 0
}

// UnmarshalJSON accepts either the struct form or a flat string map.
func (ci *ContactInfo) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	// Struct form round-trips through the same key routing; "extra" is the
	// only nested key.
	if extra, ok := m["extra"].(map[string]any); ok {
		delete(m, "extra")
		for k, v := range extra {
			m[k] = v
		}
	}
	*ci = ContactInfoFromMap(m)
	return nil
}

// Value implements driver.Valuer so ContactInfo persists as JSONB.
func (ci ContactInfo) Value() (driver.Value, error) {
	return json.Marshal(ci)
}

// Scan implements sql.Scanner.
func (ci *ContactInfo) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*ci = ContactInfo{}
		return nil
	case []byte:
		return json.Unmarshal(t, ci)
	case string:
		return json.Unmarshal([]byte(t), ci)
	default:
		return fmt.Errorf("cannot scan %T into ContactInfo", src)
	}
}

// Attributes is the open attribute bag on a line item, stored as JSONB.
type Attributes map[string]string

func (a Attributes) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(t, a)
	case string:
		return json.Unmarshal([]byte(t), a)
	default:
		return fmt.Errorf("cannot scan %T into Attributes", src)
	}
}
