package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"vocabulary/internal/config"
	"vocabulary/internal/database"
	vgraphql "vocabulary/internal/graphql"
	"vocabulary/internal/handlers"
	"vocabulary/internal/metrics"
	"vocabulary/internal/middleware"
	"vocabulary/internal/pipeline"
	"vocabulary/internal/repositories"
	"vocabulary/internal/services"
	"vocabulary/internal/uniqueness"
	"vocabulary/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAPIKey = "test-api-key"

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := database.Open(&config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)

	deps := services.Deps{
		Validator: validation.New(),
		Hasher:    services.BcryptHasher{Cost: bcrypt.MinCost},
		Guard:     uniqueness.NewLocalGuard(time.Minute),
	}
	m := metrics.New(prometheus.NewRegistry())

	userRepo := repositories.NewGORMUserRepository(db)
	userPipeline := pipeline.NewUserPipeline(services.NewUserService(userRepo, deps), m)
	adminPipeline := pipeline.NewAdminUserPipeline(
		services.NewAdminUserService(repositories.NewGORMAdminUserRepository(db), deps), m)
	vocabPipeline := pipeline.NewVocabularyPipeline(
		services.NewVocabularyService(repositories.NewGORMVocabularyRepository(db), userRepo, deps), m)

	schema, err := vgraphql.NewSchema(adminPipeline)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})

	api := app.Group("/api", middleware.APIKeyRequired(testAPIKey))
	handlers.NewUserHandler(userPipeline).RegisterRoutes(api)
	handlers.NewAdminUserHandler(adminPipeline).RegisterRoutes(api)
	handlers.NewVocabularyHandler(vocabPipeline).RegisterRoutes(api)
	handlers.NewGraphQLHandler(schema).RegisterRoutes(app, middleware.APIKeyRequired(testAPIKey))

	return app
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)

	resp, err := app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

var ann = map[string]string{
	"username":  "ann",
	"email":     "ann@x.com",
	"password":  "secret",
	"firstName": "Ann",
	"lastName":  "Lee",
}

func TestUserEndpoints(t *testing.T) {
	app := setupApp(t)

	status, env := call(t, app, http.MethodPost, "/api/users", ann)
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "SUCCESS", env.Code)
	user := decodeData(t, env)
	assert.Equal(t, "ann", user["username"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, user["createdAt"])
	id := user["id"].(string)

	// Duplicate Registration (username)
	status, env = call(t, app, http.MethodPost, "/api/users", ann)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ERROR", env.Code)
	assert.Equal(t, "User with username ann already exists", env.Message)
	assert.Equal(t, "null", string(env.Data))

	status, env = call(t, app, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, status)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Len(t, users, 1)

	status, env = call(t, app, http.MethodPatch, "/api/users/"+id, map[string]string{"lastName": "Park"})
	require.Equal(t, http.StatusOK, status, env.Message)
	updated := decodeData(t, env)
	assert.Equal(t, "Park", updated["lastName"])
	assert.Equal(t, "ann@x.com", updated["email"])

	status, env = call(t, app, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Park", decodeData(t, env)["lastName"])

	status, env = call(t, app, http.MethodDelete, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ann", decodeData(t, env)["username"])

	status, env = call(t, app, http.MethodGet, "/api/users/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No user found with userId: "+id, env.Message)
}

func TestUserEndpoints_BadRequests(t *testing.T) {
	app := setupApp(t)

	status, env := call(t, app, http.MethodPost, "/api/users", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid user data", env.Message)

	status, env = call(t, app, http.MethodPost, "/api/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "Invalid request: ")

	status, env = call(t, app, http.MethodPost, "/api/users", map[string]string{"email": "ann@x.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Required firstName, Required lastName, Required username, Required password", env.Message)

	status, _ = call(t, app, http.MethodPatch, "/api/users/missing", map[string]string{"lastName": "Park"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminUserEndpoints(t *testing.T) {
	app := setupApp(t)
	root := map[string]string{
		"role": "ADMIN", "firstName": "Root", "middleName": "M", "lastName": "Admin",
		"username": "root", "email": "root@x.com", "password": "changeme",
	}

	status, env := call(t, app, http.MethodPost, "/api/admin/users", root)
	require.Equal(t, http.StatusCreated, status, env.Message)
	id := decodeData(t, env)["id"].(string)

	status, env = call(t, app, http.MethodPatch, "/api/admin/users/"+id, map[string]string{"role": "CHIEF"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid role. Allowed values are ADMIN or STAFF", env.Message)

	status, env = call(t, app, http.MethodDelete, "/api/admin/users/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No admin user found with adminUserId: missing-id", env.Message)

	status, env = call(t, app, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusOK, status)
	var admins []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &admins))
	assert.Len(t, admins, 1)
}

func TestVocabularyEndpoints(t *testing.T) {
	app := setupApp(t)
	_, env := call(t, app, http.MethodPost, "/api/users", ann)
	userID := decodeData(t, env)["id"].(string)

	entry := map[string]string{
		"userId": userID, "word": "bahay", "partOfSpeech": "noun",
		"englishDefinition": "house", "tagalogDefinition": "tirahan",
		"englishSynonyms": "home", "tagalogSynonyms": "tahanan",
		"englishAntonyms": "none", "tagalogAntonyms": "wala",
		"exampleSentence": "Malaki ang bahay.",
	}
	status, env := call(t, app, http.MethodPost, "/api/vocabularies", entry)
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "Vocabulary added successfully", env.Message)
	created := decodeData(t, env)
	vocabID := created["id"].(string)

	status, env = call(t, app, http.MethodPost, "/api/vocabularies", entry)
	assert.Equal(t, http.StatusConflict, status)

	entry["userId"] = "ghost"
	status, env = call(t, app, http.MethodPost, "/api/vocabularies", entry)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No user found with userId: ghost", env.Message)

	time.Sleep(1100 * time.Millisecond) // timestamps have second resolution on the wire
	status, env = call(t, app, http.MethodPatch, "/api/vocabularies/"+vocabID,
		map[string]string{"tagalogDefinition": "bagong kahulugan"})
	require.Equal(t, http.StatusOK, status, env.Message)
	updated := decodeData(t, env)
	assert.Equal(t, "house", updated["englishDefinition"])
	assert.Equal(t, "bagong kahulugan", updated["tagalogDefinition"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
	assert.Greater(t, updated["updatedAt"].(string), created["updatedAt"].(string))

	status, env = call(t, app, http.MethodGet, "/api/vocabularies/user/"+userID, nil)
	assert.Equal(t, http.StatusOK, status)
	var owned []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &owned))
	assert.Len(t, owned, 1)

	status, env = call(t, app, http.MethodGet, "/api/vocabularies/"+vocabID, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bahay", decodeData(t, env)["word"])

	status, _ = call(t, app, http.MethodDelete, "/api/vocabularies/"+vocabID, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = call(t, app, http.MethodGet, "/api/vocabularies/"+vocabID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEndpointsWithoutAPIKey(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":"{ getAllAdminUsers { code } }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, "wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestGraphQLEndpoint(t *testing.T) {
	app := setupApp(t)

	body := map[string]any{
		"query": `mutation($req: AdminUserInput!) { addAdminUser(request: $req) { code message data { username role } } }`,
		"variables": map[string]any{"req": map[string]string{
			"role": "staff", "firstName": "S", "middleName": "T", "lastName": "U",
			"username": "staffer", "email": "staff@x.com", "password": "changeme",
		}},
	}
	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			AddAdminUser struct {
				Code string `json:"code"`
				Data struct {
					Username string `json:"username"`
					Role     string `json:"role"`
				} `json:"data"`
			} `json:"addAdminUser"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "SUCCESS", out.Data.AddAdminUser.Code)
	assert.Equal(t, "STAFF", out.Data.AddAdminUser.Data.Role)

	status, env := call(t, app, http.MethodGet, "/api/admin/users", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "staffer")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := setupApp(t)
	status, env := call(t, app, http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "ERROR", env.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, handlers.StatusFor(pipeline.Success))
	assert.Equal(t, http.StatusCreated, handlers.StatusFor(pipeline.Created))
	assert.Equal(t, http.StatusBadRequest, handlers.StatusFor(pipeline.BadRequest))
	assert.Equal(t, http.StatusConflict, handlers.StatusFor(pipeline.Conflict))
	assert.Equal(t, http.StatusNotFound, handlers.StatusFor(pipeline.NotFound))
	assert.Equal(t, http.StatusInternalServerError, handlers.StatusFor(pipeline.Internal))
}
