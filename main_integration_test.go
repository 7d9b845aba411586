package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goldenview/realty/internal/auth"
	"goldenview/realty/internal/email"
	"goldenview/realty/internal/models"
)

const (
	testAppBinary      = "./realty_test_app"
	testAppPort        = "8089"
	testServiceApiPort = "8091"
	testAppURL         = "http://localhost:" + testAppPort
	testServiceApiURL  = "http://localhost:" + testServiceApiPort
	startupTimeout     = 15 * time.Second
	pingEndpoint       = testAppURL + "/v1/ping"

	testAdminEmail    = "integration-admin@example.com"
	testAdminPassword = "IntegrationP@ss1"
)

// appUnavailable is set when no MongoDB is configured; every test then skips.
var appUnavailable bool

// TestMain builds the binary and runs it in "all" mode against the configured
// MongoDB and Redis, with mock email delivery so messages can be read back.
func TestMain(m *testing.M) {
	godotenv.Load()
	if os.Getenv("MONGO_URI") == "" {
		log.Println("MONGO_URI not set; integration tests will be skipped")
		appUnavailable = true
		m.Run()
		return
	}

	defer func() {
		log.Println("Integration Test Teardown: Cleaning up test binary...")
		_ = os.Remove(testAppBinary)
	}()

	log.Println("Integration Test Setup: Building application...")
	buildCmd := exec.Command("go", "build", "-o", testAppBinary, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		log.Printf("Failed to build application: %v\nOutput:\n%s", err, string(out))
		os.Exit(1)
	}

	if err := seedTestData(); err != nil {
		log.Printf("Failed to seed test data: %v", err)
		os.Exit(1)
	}
	defer cleanupTestData()

	appCmd := exec.Command(testAppBinary, "-m", "all")
	appCmd.Env = append(os.Environ(),
		"API_PORT="+testAppPort,
		"SERVICE_API_PORT="+testServiceApiPort,
		"JWT_SECRET=integration-test-secret",
		"GIN_MODE=release",
		"MOCK_SERVICES=true",
		"CLOUDFLARE_TURNSTILE_SECRET_KEY=",
		"AWS_S3_BUCKET=",
		"SMTP_FROM_ADDRESS=test@example.com",
	)
	appCmd.Stderr = os.Stderr
	appCmd.Stdout = os.Stdout

	if err := appCmd.Start(); err != nil {
		log.Printf("Failed to start application: %v", err)
		os.Exit(1)
	}
	log.Printf("Integration Test Setup: Application started (PID: %d)...", appCmd.Process.Pid)

	defer func() {
		log.Println("Integration Test Teardown: Sending SIGTERM to application...")
		if err := appCmd.Process.Signal(syscall.SIGTERM); err != nil {
			log.Printf("Failed to send SIGTERM: %v. Killing.", err)
			_ = appCmd.Process.Kill()
			return
		}
		_, _ = appCmd.Process.Wait()
	}()

	if !waitForPing() {
		log.Printf("Application failed to start within %v", startupTimeout)
		return
	}

	exitCode := m.Run()
	log.Printf("Integration Test Teardown: Tests finished with exit code %d.", exitCode)
}

func waitForPing() bool {
	deadline := time.Now().Add(startupTimeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(pingEndpoint)
		if err == nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK && string(body) == "pong" {
				return true
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func requireApp(t *testing.T) {
	t.Helper()
	if appUnavailable {
		t.Skip("MONGO_URI not set; skipping integration test")
	}
}

func connectTestDB(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	dbName := os.Getenv("MONGO_DB_NAME")
	if dbName == "" {
		dbName = "golden_view"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	return client, client.Database(dbName), nil
}

// seedTestData inserts the admin account the tests log in with.
func seedTestData() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, database, err := connectTestDB(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		return err
	}
	users := database.Collection("users")
	if _, err := users.DeleteMany(ctx, bson.M{"email": testAdminEmail}); err != nil {
		return fmt.Errorf("failed to remove previous admin: %w", err)
	}
	now := time.Now().UTC()
	_, err = users.InsertOne(ctx, models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Integration Admin",
		Email:        testAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.Println("Successfully seeded admin user.")
	return nil
}

func cleanupTestData() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, database, err := connectTestDB(ctx)
	if err != nil {
		log.Printf("Cleanup: %v", err)
		return
	}
	defer client.Disconnect(ctx)

	if _, err := database.Collection("users").DeleteMany(ctx, bson.M{"email": testAdminEmail}); err != nil {
		log.Printf("Failed to delete seeded admin: %v", err)
	}
	if _, err := database.Collection("appointments").DeleteMany(ctx, bson.M{"propertyTitle": bson.M{"$regex": "^Integration "}}); err != nil {
		log.Printf("Failed to delete test appointments: %v", err)
	}
	res, err := database.Collection("properties").DeleteMany(ctx, bson.M{"title": bson.M{"$regex": "^Integration "}})
	if err != nil {
		log.Printf("Failed to delete test properties: %v", err)
	} else {
		log.Printf("Deleted %d test properties during cleanup.", res.DeletedCount)
	}
}

func doJSON(t *testing.T, method, url string, body interface{}, token string) (map[string]interface{}, int) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "Request to %s should not fail", url)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out, resp.StatusCode
}

func loginAdmin(t *testing.T) string {
	t.Helper()
	body, status := doJSON(t, "POST", testAppURL+"/v1/auth/login", map[string]string{
		"email": testAdminEmail, "password": testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, status, "login response: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createTestProperty(t *testing.T, token, title string) string {
	t.Helper()
	body, status := doJSON(t, "POST", testAppURL+"/v1/properties", map[string]interface{}{
		"title":        title,
		"description":  "A listing created by the integration tests.",
		"price":        2500000,
		"propertyType": "Apartment",
		"category":     "Residential",
		"legalStatus":  "Clear Title",
		"area":         map[string]interface{}{"total": 1200},
		"address": map[string]interface{}{
			"street": "7 Hill Road", "city": "Pune", "state": "Maharashtra", "zipCode": "411001",
		},
	}, token)
	require.Equal(t, http.StatusCreated, status, "create response: %v", body)
	id, _ := body["_id"].(string)
	require.NotEmpty(t, id)
	return id
}

// getEmailFromServiceAPI polls the service API until the mock sender has
// stored a message of the given kind for addr.
func getEmailFromServiceAPI(t *testing.T, kind, addr string) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		body, status := doJSON(t, "POST", testServiceApiURL+"/api", map[string]interface{}{
			"method":    "getTestEmail",
			"arguments": []string{kind, addr},
		}, "")
		if status == http.StatusOK {
			result, ok := body["result"].(map[string]interface{})
			require.True(t, ok, "getTestEmail result should be an object: %v", body)
			return result
		}
		if status != http.StatusNotFound {
			log.Printf("getTestEmail returned status %d. Polling...", status)
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("Timeout waiting for %s email to %s", kind, addr)
	return nil
}

func TestIntegration_Ping(t *testing.T) {
	requireApp(t)

	resp, err := http.Get(pingEndpoint)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestIntegration_PublicConfig(t *testing.T) {
	requireApp(t)

	body, status := doJSON(t, "GET", testAppURL+"/v1/config", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "priceRange")
}

func TestIntegration_LoginRejectsWrongPassword(t *testing.T) {
	requireApp(t)

	_, status := doJSON(t, "POST", testAppURL+"/v1/auth/login", map[string]string{
		"email": testAdminEmail, "password": "not-the-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestIntegration_PropertyLifecycle(t *testing.T) {
	requireApp(t)
	token := loginAdmin(t)
	id := createTestProperty(t, token, "Integration lifecycle flat")

	body, status := doJSON(t, "GET", testAppURL+"/v1/properties/"+id, nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Integration lifecycle flat", body["title"])

	body, status = doJSON(t, "GET", testAppURL+"/v1/properties?type=Apartment&minPrice=2000000", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "activeFilterCount")

	_, status = doJSON(t, "PATCH", testAppURL+"/v1/admin/properties/"+id+"/featured", map[string]bool{"featured": true}, token)
	assert.Equal(t, http.StatusOK, status)

	_, status = doJSON(t, "DELETE", testAppURL+"/v1/admin/properties/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, status)

	_, status = doJSON(t, "GET", testAppURL+"/v1/properties/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestIntegration_AppointmentNotifications(t *testing.T) {
	requireApp(t)
	token := loginAdmin(t)
	propertyID := createTestProperty(t, token, "Integration viewing villa")
	clientEmail := fmt.Sprintf("client_%d@example.com", time.Now().UnixNano())

	body, status := doJSON(t, "POST", testAppURL+"/v1/appointments", map[string]interface{}{
		"propertyId":  propertyID,
		"date":        time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
		"timeSlot":    "10:00 AM",
		"clientName":  "Integration Client",
		"clientEmail": clientEmail,
	}, "")
	require.Equal(t, http.StatusCreated, status, "appointment response: %v", body)
	appointmentID, _ := body["_id"].(string)
	require.NotEmpty(t, appointmentID)

	received := getEmailFromServiceAPI(t, email.KindAppointmentReceived, clientEmail)
	assert.Contains(t, received["body"], "Integration viewing villa")

	_, status = doJSON(t, "PATCH", testAppURL+"/v1/admin/appointments/"+appointmentID, map[string]string{"status": "confirmed"}, token)
	require.Equal(t, http.StatusOK, status)

	confirmed := getEmailFromServiceAPI(t, email.KindAppointmentConfirmed, clientEmail)
	assert.Equal(t, clientEmail, confirmed["to"])

	_, status = doJSON(t, "PATCH", testAppURL+"/v1/admin/appointments/"+appointmentID, map[string]string{"status": "rescheduled"}, token)
	assert.Equal(t, http.StatusConflict, status)
}
