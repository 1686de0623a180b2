package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, app *fiber.App, path string) (int, SemanticResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env SemanticResponse
	require.NoError(t, json.Unmarshal(b, &env))
	return resp.StatusCode, env
}

func TestEnvelope_DefaultsMessageFromStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c fiber.Ctx) error { return Success(c, fiber.StatusCreated, "", []int{}) })
	app.Get("/bad", func(c fiber.Ctx) error { return Error(c, 999, "", nil) })
	app.Get("/busy", func(c fiber.Ctx) error { return Error(c, fiber.StatusServiceUnavailable, "", nil) })

	status, env := decode(t, app, "/created")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, MessageCreated, env.Message)
	assert.Equal(t, []any{}, env.Data)

	status, env = decode(t, app, "/bad")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, MessageInternalServerError, env.Message)

	_, env = decode(t, app, "/busy")
	assert.Equal(t, MessageServiceUnavailable, env.Message)
}
