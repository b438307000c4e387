package model

import (
	"github.com/google/uuid"

	"churchbook_backend/internals/constants"
)

// Role transitions are plain mutations on the record; persisting them is the caller's job.

// ToBeLeader makes u a cell leader unless u already holds a role at least that high.
func ToBeLeader(u *UserModel) {
	PromoteTo(u, constants.RoleLeader)
}

// PromoteTo raises u to r. It never lowers a role.
func PromoteTo(u *UserModel, r constants.Role) {
	if u.Role.IsAtLeast(r) {
		return
	}
	u.Role = r
}

func ChangeRole(u *UserModel, r constants.Role) {
	u.Role = r
}

// PutDownLeader resets a former leader to a plain member: role MEMBER, no cell, no
// password. Pastoral staff (JUNIOR_PASTOR and above) are left as they are.
func PutDownLeader(u *UserModel) {
	if u.Role.IsStaff() {
		return
	}
	u.Role = constants.RoleMember
	u.CellID = nil
	u.Password = nil
}

func JoinCell(u *UserModel, cellID uuid.UUID) {
	id := cellID
	u.CellID = &id
}

func LeaveCell(u *UserModel) {
	u.CellID = nil
}
