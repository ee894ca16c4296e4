package records

import "time"

// Status is the lifecycle state of a weapon license.
type Status string

const (
	StatusActive    Status = "Active"
	StatusSubmitted Status = "Submitted"
	StatusExpired   Status = "Expired"
	StatusRevoked   Status = "Revoked"
)

// ParseStatus maps a raw dataset value onto a known status.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusActive, StatusSubmitted, StatusExpired, StatusRevoked:
		return Status(value), true
	}
	return "", false
}

func (s Status) IsValid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Record is one weapon license holder row from the dataset.
type Record struct {
	Name          string    `json:"name"`
	LicenseNo     string    `json:"license_no"`
	Area          string    `json:"area"`
	PoliceStation string    `json:"police_station"`
	Address       string    `json:"address"`
	GunType       string    `json:"gun_type"`
	WeaponModel   string    `json:"weapon_model"`
	IssueDate     time.Time `json:"issue_date"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Status        Status    `json:"status"`
	Mobile        string    `json:"mobile"`
	Gender        string    `json:"gender"`
	DOB           time.Time `json:"dob"`
	Remarks       string    `json:"remarks,omitempty"`
}
