package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"churchbook_backend/internals/constants"
	cellModel "churchbook_backend/internals/features/communities/cells/model"
	"churchbook_backend/internals/features/users/users/model"
	"churchbook_backend/internals/repository"
)

/* =========================================================
   LEADERSHIP TRANSITIONS
   Shared by the cell and group orchestration. Every helper runs on the caller's
   transaction and persists the user it touches.

   Rule: losing a higher position never drops a user below a position they still
   hold. Pastoral staff keep their role in every case.
========================================================= */

// LeadsOtherCell returns a cell led by userID other than exceptCellID, or nil.
func LeadsOtherCell(ctx context.Context, tx repository.Store, userID, exceptCellID uuid.UUID) (*cellModel.CellModel, error) {
	cells, err := tx.ListCellsLedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cells {
		if cells[i].ID != exceptCellID {
			return &cells[i], nil
		}
	}
	return nil, nil
}

// HighestFamilyRole is the best family role userID holds across the groups they head,
// ignoring exceptGroupID. Zero when they head none.
func HighestFamilyRole(ctx context.Context, tx repository.Store, userID, exceptGroupID uuid.UUID) (constants.Role, error) {
	groups, err := tx.ListGroupsHeadedBy(ctx, userID)
	if err != nil {
		return 0, err
	}
	var best constants.Role
	for i := range groups {
		g := &groups[i]
		if g.ID == exceptGroupID {
			continue
		}
		r := constants.RoleSubFamilyLeader
		if g.LeaderID == userID {
			r = constants.RoleFamilyLeader
		}
		if best == 0 || r.IsHigherThan(best) {
			best = r
		}
	}
	return best, nil
}

// ReleaseCellLeader takes cellID away from u.
//   - u leads another cell: role and password stay; cell_id follows the other cell
//     when it pointed at this one.
//   - u still heads a group: family role stays; only the cell link clears.
//   - otherwise u is put down to a plain member.
func ReleaseCellLeader(ctx context.Context, tx repository.Store, u *model.UserModel, cellID uuid.UUID) error {
	other, err := LeadsOtherCell(ctx, tx, u.ID, cellID)
	if err != nil {
		return err
	}
	switch {
	case other != nil:
		if u.InCell(cellID) {
			model.JoinCell(u, other.ID)
		}
	case u.Role.IsFamilyRole():
		best, err := HighestFamilyRole(ctx, tx, u.ID, uuid.Nil)
		if err != nil {
			return err
		}
		if best == 0 {
			model.PutDownLeader(u)
		} else if u.InCell(cellID) {
			model.LeaveCell(u)
		}
	default:
		model.PutDownLeader(u)
		if u.InCell(cellID) {
			model.LeaveCell(u)
		}
	}

	zap.L().Debug("cell leader released",
		zap.String("user_id", u.ID.String()),
		zap.String("cell_id", cellID.String()),
		zap.String("role", u.Role.Key()),
	)
	return tx.SaveUser(ctx, u)
}

// RevertFamilyLeader takes groupID away from u. Cells u leads are detached from the
// group first. The role then falls back to the highest position u still holds:
// another group, a cell (LEADER), or nothing (PutDownLeader).
func RevertFamilyLeader(ctx context.Context, tx repository.Store, u *model.UserModel, groupID uuid.UUID) error {
	cells, err := tx.ListCellsLedBy(ctx, u.ID)
	if err != nil {
		return err
	}
	for i := range cells {
		if !cells[i].InGroup(groupID) {
			continue
		}
		cells[i].GroupID = nil
		if err := tx.SaveCell(ctx, &cells[i]); err != nil {
			return err
		}
	}

	if u.Role.IsStaff() {
		return nil
	}

	best, err := HighestFamilyRole(ctx, tx, u.ID, groupID)
	if err != nil {
		return err
	}
	switch {
	case best != 0:
		model.ChangeRole(u, best)
	case len(cells) > 0:
		model.ChangeRole(u, constants.RoleLeader)
	default:
		model.PutDownLeader(u)
	}

	zap.L().Debug("family leader reverted",
		zap.String("user_id", u.ID.String()),
		zap.String("group_id", groupID.String()),
		zap.String("role", u.Role.Key()),
	)
	return tx.SaveUser(ctx, u)
}

// AssignFamilyLeader gives u the family role matching what they head after the group
// row has been written, and links every cell u leads to groupID. Staff keep their role.
func AssignFamilyLeader(ctx context.Context, tx repository.Store, u *model.UserModel, groupID uuid.UUID) error {
	if !u.Role.IsStaff() {
		best, err := HighestFamilyRole(ctx, tx, u.ID, uuid.Nil)
		if err != nil {
			return err
		}
		if best != 0 {
			model.ChangeRole(u, best)
		}
		if err := tx.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	cells, err := tx.ListCellsLedBy(ctx, u.ID)
	if err != nil {
		return err
	}
	for i := range cells {
		if cells[i].InGroup(groupID) {
			continue
		}
		gid := groupID
		cells[i].GroupID = &gid
		if err := tx.SaveCell(ctx, &cells[i]); err != nil {
			return err
		}
	}
	return nil
}

// LeadsAnyGroup reports whether userID is leader or sub-leader of a group other than
// exceptGroupID.
func LeadsAnyGroup(ctx context.Context, tx repository.Store, userID, exceptGroupID uuid.UUID) (bool, error) {
	r, err := HighestFamilyRole(ctx, tx, userID, exceptGroupID)
	return r != 0, err
}
