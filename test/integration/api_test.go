package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func (app *TestApp) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

// TestAPIFlow walks the whole surface against a real database: register,
// login, then the product CRUD lifecycle including soft-delete visibility.
func TestAPIFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)

	registerBody := map[string]string{
		"name":                  "Jordan Doe",
		"email":                 "jordan@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	}

	resp, env := app.do(t, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	// The users unique constraint is the authority for duplicate emails.
	resp, env = app.do(t, http.MethodPost, "/api/auth/register", "", registerBody)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "email")

	resp, env = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jordan@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)
	token := auth.Token

	// Stored credential must be a hash, not the raw password.
	var storedHash string
	err := app.DB.QueryRow("SELECT password_hash FROM users WHERE email = $1", "jordan@example.com").Scan(&storedHash)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", storedHash)

	resp, env = app.do(t, http.MethodPost, "/api/products", token, map[string]any{
		"name":        "Test Product",
		"description": "Integration coverage",
		"price":       99.99,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var product struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, 99.99, product.Price)

	resp, env = app.do(t, http.MethodGet, "/api/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = app.do(t, http.MethodPatch, "/api/products/"+product.ID, token, map[string]any{
		"price": 75.50,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Test Product", updated.Name)
	assert.Equal(t, 75.50, updated.Price)

	resp, env = app.do(t, http.MethodDelete, "/api/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Product deleted successfully", env.Message)

	resp, _ = app.do(t, http.MethodGet, "/api/products/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The row survives the delete; only the public reads lose sight of it.
	var deletedCount int
	err = app.DB.QueryRow("SELECT COUNT(*) FROM products WHERE deleted_at IS NOT NULL").Scan(&deletedCount)
	require.NoError(t, err)
	assert.Equal(t, 1, deletedCount)
}

func TestSearchAndPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	app := setupTestApp(t)

	resp, env := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":                  "Jordan Doe",
		"email":                 "jordan@example.com",
		"password":              "password123",
		"password_confirmation": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	token := auth.Token

	names := []string{"Wireless Mouse", "USB Cable", "Gaming MOUSE Pad", "Monitor"}
	for _, name := range names {
		resp, _ := app.do(t, http.MethodPost, "/api/products", token, map[string]any{
			"name":  name,
			"price": 10.00,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	type pageData struct {
		Data     []json.RawMessage `json:"data"`
		LastPage int               `json:"last_page"`
		PerPage  int               `json:"per_page"`
		Total    int64             `json:"total"`
	}

	resp, env = app.do(t, http.MethodGet, "/api/products?search=mouse", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page pageData
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Data, 2)

	resp, env = app.do(t, http.MethodGet, "/api/products?per_page=3", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 3, page.PerPage)
	assert.Equal(t, 2, page.LastPage)
	assert.Len(t, page.Data, 3)
}
