package dbtime

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChurchLocation(t *testing.T) {
	assert.Equal(t, 9*60*60, offset(GetChurchLocation(nil)))

	app := fiber.New()
	var got *time.Location
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(LocChurchLoc, time.UTC)
		got = GetChurchLocation(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got)
}

func offset(loc *time.Location) int {
	_, off := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc).Zone()
	return off
}
