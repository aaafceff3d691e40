package model

type Role string

const (
	RoleDoctor    Role = "doctor"
	RoleCaregiver Role = "caregiver"
)

func (r Role) Valid() bool {
	return r == RoleDoctor || r == RoleCaregiver
}
