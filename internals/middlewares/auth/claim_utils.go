package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	helper "churchbook_backend/internals/helpers"
	helperAuth "churchbook_backend/internals/helpers/auth"
)

var errBadClaims = errors.New("missing or malformed claims")

/* ======== Store claims to Locals ======== */

func storeClaims(c *fiber.Ctx, claims *helperAuth.AccessClaims) error {
	tokenID, err := claims.TokenID()
	if err != nil {
		return errBadClaims
	}
	userID, err := claims.User()
	if err != nil {
		return errBadClaims
	}
	churchID, err := claims.Church()
	if err != nil {
		return errBadClaims
	}
	role, ok := claims.Role()
	if !ok {
		return errBadClaims
	}

	c.Locals(helper.LocTokenID, tokenID)
	c.Locals(helper.LocUserID, userID)
	c.Locals(helper.LocChurchID, churchID)
	c.Locals(helper.LocUserName, claims.Name)
	c.Locals(helper.LocUserRole, role)
	return nil
}
