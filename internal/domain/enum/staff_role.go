package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StaffRole is the capability level of a staff account
type StaffRole string

const (
	StaffRoleOwner         StaffRole = "owner"
	StaffRoleAdmin         StaffRole = "admin"
	StaffRoleInvoiceBiller StaffRole = "invoice_biller"
)

// StaffRoles lists every assignable role
var StaffRoles = []StaffRole{StaffRoleOwner, StaffRoleAdmin, StaffRoleInvoiceBiller}

func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether r is a known role
func (r StaffRole) IsValid() bool {
	for _, role := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanManage reports whether the role may record visits and edit stock
func (r StaffRole) CanManage() bool {
	return r == StaffRoleOwner || r == StaffRoleAdmin
}

// ParseStaffRole parses a role name, accepting any case
func ParseStaffRole(s string) (StaffRole, error) {
	r := StaffRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown staff role %q", s)
	}
	return r, nil
}

func (r *StaffRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseStaffRole(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
