package dbtime

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Locals key for a per-request override of the church time zone.
const LocChurchLoc = "church_loc"

// DefaultTimezone is used for "today" and month windows.
const DefaultTimezone = "Asia/Seoul"

var (
	defaultLoc     *time.Location
	defaultLocOnce sync.Once
)

func defaultLocation() *time.Location {
	defaultLocOnce.Do(func() {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			// tzdata missing in the image
			loc = time.FixedZone("KST", 9*60*60)
		}
		defaultLoc = loc
	})
	return defaultLoc
}

// GetChurchLocation:
// 1) c.Locals("church_loc") when set
// 2) Fallback: Asia/Seoul
func GetChurchLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocChurchLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return defaultLocation()
}

// NowInChurch: "now" in the church time zone.
func NowInChurch(c *fiber.Ctx) time.Time {
	return time.Now().In(GetChurchLocation(c))
}
