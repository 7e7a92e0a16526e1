package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"teknikservis-backend/config"
	"teknikservis-backend/models"
	"teknikservis-backend/routes"
	"teknikservis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSMS struct {
	sent []string
}

func (f *fakeSMS) SendStatusSMS(phone, customerName, deviceType, status string) (bool, string) {
	if phone == "" {
		return false, "customer has no phone number"
	}
	f.sent = append(f.sent, phone)
	return true, "SM_fake"
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *utils.TokenManager
	sms    *fakeSMS
}

func newTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Repair{},
		&models.Notification{},
		&models.StockItem{},
	))

	cfg := &config.Config{
		Port:           "0",
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		UploadDir:      t.TempDir(),
	}
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiryHours)
	sms := &fakeSMS{}

	return &testApp{
		router: routes.SetupRouter(cfg, db, tokens, sms),
		db:     db,
		tokens: tokens,
		sms:    sms,
	}
}

var (
	hashedOnce     sync.Once
	hashedPassword string
)

// All seeded accounts share one bcrypt hash; hashing is expensive.
func testPasswordHash(t *testing.T) string {
	hashedOnce.Do(func() {
		var err error
		hashedPassword, err = utils.HashPassword("secret123")
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
	})
	return hashedPassword
}

func (app *testApp) seedUser(t *testing.T, role, email string) (*models.User, string) {
	user := &models.User{
		Email:      email,
		Password:   testPasswordHash(t),
		FullName:   "Test " + role,
		Phone:      "05551234567",
		Role:       role,
		IsActive:   true,
		IsApproved: true,
	}
	require.NoError(t, app.db.Create(user).Error)

	token, err := app.tokens.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var result []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestAdminStatusSetScenario(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")

	// Admin creates the customer.
	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Ankara Seramik A.Ş.",
		"phone":     "0312 456 7890",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	customer := decode(t, w)
	customerID := customer["id"].(string)
	require.NotEmpty(t, customerID)

	// A technician who does not own the record is refused, not hidden.
	w = app.request(t, "GET", "/api/customers/"+customerID, techToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin opens a repair for the customer.
	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": customerID,
		"device_type": "Seramik Fırını",
		"brand":       "Refsan",
		"description": "Fırın ısınmıyor",
		"priority":    "yuksek",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	repair := decode(t, w)
	repairID := repair["id"].(string)
	assert.Equal(t, "pending", repair["status"])
	assert.Equal(t, "Ankara Seramik A.Ş.", repair["customer_name"])

	// Admin-only status set pushes the SMS.
	w = app.request(t, "PUT", "/api/repairs/"+repairID+"/status", adminToken, gin.H{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.Equal(t, true, result["sms_sent"])
	assert.Len(t, app.sms.sent, 1)

	updated := result["repair"].(map[string]interface{})
	assert.Equal(t, "completed", updated["status"])
	assert.NotNil(t, updated["completed_at"])

	// The status update shows up in the admin notification feed.
	w = app.request(t, "GET", "/api/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)

	found := false
	for _, n := range notifications {
		if n["type"] == "repair_status_update" && n["new_status"] == "completed" {
			found = true
		}
	}
	assert.True(t, found, "expected a repair_status_update notification with new_status completed")
}

func TestStatusSetWithoutPhoneReportsSMSNotSent(t *testing.T) {
	app := newTestApp(t)
	admin, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	customer := &models.Customer{FullName: "Telefonsuz Müşteri"}
	require.NoError(t, app.db.Create(customer).Error)
	repair := &models.Repair{
		CustomerID:   customer.ID,
		CustomerName: customer.FullName,
		DeviceType:   "Pres",
		Status:       models.StatusPending,
		CreatedBy:    admin.ID,
		Images:       models.StringList{},
	}
	require.NoError(t, app.db.Create(repair).Error)

	w := app.request(t, "PUT", "/api/repairs/"+repair.ID.String()+"/status", adminToken, gin.H{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	assert.Equal(t, false, result["sms_sent"])
	assert.Empty(t, app.sms.sent)
}

func TestRegistrationApprovalFlow(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	w := app.request(t, "POST", "/api/auth/register", "", gin.H{
		"email":     "yeni@test.com",
		"password":  "parola123",
		"full_name": "Yeni Müşteri",
		"role":      "musteri",
		"phone":     "05557654321",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Login is refused until an admin approves the account.
	w = app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "yeni@test.com",
		"password": "parola123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.request(t, "GET", "/api/users/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decodeList(t, w)
	require.Len(t, pending, 1)
	userID := pending[0]["id"].(string)

	w = app.request(t, "POST", "/api/users/"+userID+"/approve", adminToken, gin.H{"approved": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "yeni@test.com",
		"password": "parola123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.NotEmpty(t, result["access_token"])

	// Approval leaves an admin notification behind.
	w = app.request(t, "GET", "/api/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)
	types := make([]string, 0, len(notifications))
	for _, n := range notifications {
		types = append(types, n["type"].(string))
	}
	assert.Contains(t, types, "new_user_registration")
	assert.Contains(t, types, "account_approved")
}

func TestDuplicateRegistrationConflict(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, models.RoleCustomer, "taken@test.com")

	w := app.request(t, "POST", "/api/auth/register", "", gin.H{
		"email":     "taken@test.com",
		"password":  "parola123",
		"full_name": "Mükerrer",
		"role":      "musteri",
		"phone":     "05557654321",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestNotFoundBeforeForbidden(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")
	_, customerToken := app.seedUser(t, models.RoleCustomer, "musteri@test.com")

	// Missing ids are 404 for every role.
	missing := uuid.New().String()
	for _, token := range []string{adminToken, techToken, customerToken} {
		w := app.request(t, "GET", "/api/repairs/"+missing, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	// An existing repair the technician has no claim on is 403, never 404.
	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Başka Müşteri",
		"phone":     "0212 111 2233",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerID := decode(t, w)["id"].(string)

	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": customerID,
		"device_type": "Pres",
		"description": "Hidrolik arıza",
	})
	require.Equal(t, http.StatusOK, w.Code)
	repairID := decode(t, w)["id"].(string)

	w = app.request(t, "GET", "/api/repairs/"+repairID, techToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = app.request(t, "GET", "/api/repairs/"+repairID, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomerRoleScopes(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, customerToken := app.seedUser(t, models.RoleCustomer, "ayse@test.com")

	// Implicit self record on first lookup.
	w := app.request(t, "GET", "/api/customers/me", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	self := decode(t, w)
	assert.Equal(t, "ayse@test.com", self["email"])
	selfID := self["id"].(string)

	// The customer may open a repair against their own record only.
	w = app.request(t, "POST", "/api/repairs", customerToken, gin.H{
		"customer_id": selfID,
		"device_type": "Çamur Karıştırıcı",
		"description": "Motor ses yapıyor",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	repairID := decode(t, w)["id"].(string)

	w = app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Başka Firma",
		"phone":     "0212 333 4455",
	})
	require.Equal(t, http.StatusOK, w.Code)
	foreignID := decode(t, w)["id"].(string)

	w = app.request(t, "POST", "/api/repairs", customerToken, gin.H{
		"customer_id": foreignID,
		"device_type": "Fırın",
		"description": "Isınmıyor",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Direct customer CRUD stays closed for the customer role.
	w = app.request(t, "GET", "/api/customers", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// List only shows the customer's own requests.
	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": foreignID,
		"device_type": "Pres",
		"description": "Basınç kaybı",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/repairs", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	repairs := decodeList(t, w)
	require.Len(t, repairs, 1)
	assert.Equal(t, repairID, repairs[0]["id"])

	// Mutations are denied even on the customer's own repair.
	w = app.request(t, "PUT", "/api/repairs/"+repairID+"/cancel", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTechnicianListScope(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	tech, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")

	// The technician's own customer and repair.
	w := app.request(t, "POST", "/api/customers", techToken, gin.H{
		"full_name": "Teknisyen Müşterisi",
		"phone":     "0212 999 8877",
	})
	require.Equal(t, http.StatusOK, w.Code)
	ownCustomerID := decode(t, w)["id"].(string)

	w = app.request(t, "POST", "/api/repairs", techToken, gin.H{
		"customer_id": ownCustomerID,
		"device_type": "Fırın",
		"description": "Rezistans",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A foreign repair, later assigned to the technician.
	w = app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Merkez Firma",
		"phone":     "0212 555 6677",
	})
	require.Equal(t, http.StatusOK, w.Code)
	foreignCustomerID := decode(t, w)["id"].(string)

	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": foreignCustomerID,
		"device_type": "Pres",
		"description": "Hidrolik",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assignedID := decode(t, w)["id"].(string)

	// Unassigned third repair stays invisible.
	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": foreignCustomerID,
		"device_type": "Kabin",
		"description": "Fan",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "PUT", "/api/repairs/"+assignedID, adminToken, gin.H{
		"assigned_technician_id": tech.ID.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, tech.FullName, decode(t, w)["assigned_technician_name"])

	w = app.request(t, "GET", "/api/repairs", techToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	repairs := decodeList(t, w)
	assert.Len(t, repairs, 2, "own-customer repair plus assigned repair")

	// Technician customer list only contains owned records.
	w = app.request(t, "GET", "/api/customers", techToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	customers := decodeList(t, w)
	require.Len(t, customers, 1)
	assert.Equal(t, ownCustomerID, customers[0]["id"])
}

func TestCustomerCascadeDelete(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Silinecek Firma",
		"phone":     "0212 000 1122",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerID := decode(t, w)["id"].(string)

	repairIDs := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
			"customer_id": customerID,
			"device_type": fmt.Sprintf("Cihaz %d", i+1),
			"description": "Arıza",
		})
		require.Equal(t, http.StatusOK, w.Code)
		repairIDs = append(repairIDs, decode(t, w)["id"].(string))
	}

	w = app.request(t, "DELETE", "/api/customers/"+customerID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["deleted_repairs"])

	for _, id := range repairIDs {
		w = app.request(t, "GET", "/api/repairs/"+id, adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
	w = app.request(t, "GET", "/api/customers/"+customerID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockQuantityGuard(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")

	w := app.request(t, "POST", "/api/stock", adminToken, gin.H{
		"name":         "Rezistans Teli",
		"quantity":     10,
		"min_quantity": 5,
		"unit":         "metre",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	itemID := decode(t, w)["id"].(string)

	// Oversubtraction is rejected and leaves the quantity untouched.
	w = app.request(t, "POST", "/api/stock/"+itemID+"/quantity", adminToken, gin.H{
		"operation": "subtract",
		"quantity":  11,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock", decode(t, w)["error"])

	w = app.request(t, "GET", "/api/stock", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeList(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, float64(10), items[0]["quantity"])

	w = app.request(t, "POST", "/api/stock/"+itemID+"/quantity", adminToken, gin.H{
		"operation": "subtract",
		"quantity":  6,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["quantity"])

	// Now under the minimum, the item shows up in low-stock.
	w = app.request(t, "GET", "/api/stock/low-stock", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	low := decodeList(t, w)
	require.Len(t, low, 1)
	assert.Equal(t, itemID, low[0]["id"])

	// Stock is admin territory.
	w = app.request(t, "GET", "/api/stock", techToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSystemResetPreservesAdmins(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	app.seedUser(t, models.RoleTechnician, "tech@test.com")
	app.seedUser(t, models.RoleCustomer, "musteri@test.com")

	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Firma",
		"phone":     "0212 123 4567",
	})
	require.Equal(t, http.StatusOK, w.Code)
	customerID := decode(t, w)["id"].(string)
	w = app.request(t, "POST", "/api/repairs", adminToken, gin.H{
		"customer_id": customerID,
		"device_type": "Fırın",
		"description": "Arıza",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "DELETE", "/api/admin/system/reset", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var userCount, repairCount, customerCount, notifCount int64
	app.db.Model(&models.User{}).Count(&userCount)
	app.db.Model(&models.Repair{}).Count(&repairCount)
	app.db.Model(&models.Customer{}).Count(&customerCount)
	app.db.Model(&models.Notification{}).Count(&notifCount)

	assert.Equal(t, int64(1), userCount, "only the admin survives")
	assert.Zero(t, repairCount)
	assert.Zero(t, customerCount)
	assert.Zero(t, notifCount)
}

func TestAdminEndpointsForbiddenForTechnician(t *testing.T) {
	app := newTestApp(t)
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")

	paths := []struct{ method, path string }{
		{"DELETE", "/api/admin/repairs/delete-all"},
		{"DELETE", "/api/admin/customers/delete-all"},
		{"DELETE", "/api/admin/system/reset"},
		{"POST", "/api/admin/demo/create-data"},
		{"POST", "/api/admin/system/reconcile"},
		{"GET", "/api/users"},
		{"GET", "/api/notifications"},
	}
	for _, p := range paths {
		w := app.request(t, p.method, p.path, techToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, p.path)
	}
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	app := newTestApp(t)

	w := app.request(t, "GET", "/api/repairs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.request(t, "GET", "/api/repairs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationFeedLifecycle(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Bildirim Firma",
		"phone":     "0212 777 8899",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/notifications/unread-count", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["unread_count"])

	w = app.request(t, "GET", "/api/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifications := decodeList(t, w)
	require.Len(t, notifications, 1)
	notifID := notifications[0]["id"].(string)
	assert.Equal(t, "new_customer", notifications[0]["type"])

	w = app.request(t, "PUT", "/api/notifications/"+notifID+"/read", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/notifications/unread-count", adminToken, nil)
	assert.Equal(t, float64(0), decode(t, w)["unread_count"])

	w = app.request(t, "DELETE", "/api/notifications/clear-all", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/notifications", adminToken, nil)
	assert.Empty(t, decodeList(t, w))
}

func TestStatsShapePerRole(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")
	_, customerToken := app.seedUser(t, models.RoleCustomer, "musteri@test.com")

	w := app.request(t, "GET", "/api/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminStats := decode(t, w)
	assert.Contains(t, adminStats, "total_repairs")
	assert.Contains(t, adminStats, "total_technicians")

	w = app.request(t, "GET", "/api/stats", techToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	techStats := decode(t, w)
	assert.Contains(t, techStats, "my_completed")
	assert.NotContains(t, techStats, "total_repairs")

	w = app.request(t, "GET", "/api/stats", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	customerStats := decode(t, w)
	assert.Contains(t, customerStats, "my_pending")
	assert.NotContains(t, customerStats, "my_completed")
}

func TestTechnicianReportAccess(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	tech, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")
	other, otherToken := app.seedUser(t, models.RoleTechnician, "other@test.com")

	w := app.request(t, "GET", "/api/reports/technician/"+tech.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/reports/technician/"+tech.ID.String(), techToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/reports/technician/"+tech.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.request(t, "GET", "/api/reports/technician/"+other.ID.String(), adminToken, nil)
	report := decode(t, w)
	assert.Equal(t, other.FullName, report["technician_name"])
}

func TestSearchScoping(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")
	_, techToken := app.seedUser(t, models.RoleTechnician, "tech@test.com")

	w := app.request(t, "POST", "/api/customers", adminToken, gin.H{
		"full_name": "Ege Karo Ltd. Şti.",
		"phone":     "0274 789 0123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.request(t, "GET", "/api/search?query=Ege&type=customers", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode(t, w)
	customers := result["customers"].([]interface{})
	assert.Len(t, customers, 1)

	// The technician does not own the record, so the scoped search is empty.
	w = app.request(t, "GET", "/api/search?query=Ege&type=customers", techToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result = decode(t, w)
	assert.Empty(t, result["customers"])

	w = app.request(t, "GET", "/api/search", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDemoDataSeeding(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	w := app.request(t, "POST", "/api/admin/demo/create-data", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.Equal(t, float64(3), result["users_created"])
	assert.Equal(t, float64(5), result["customers_created"])
	assert.Equal(t, float64(5), result["repairs_created"])

	// Demo accounts are approved and ready to log in.
	w = app.request(t, "POST", "/api/auth/login", "", gin.H{
		"email":    "admin@demo.com",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadValidation(t *testing.T) {
	app := newTestApp(t)
	_, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	body, contentType := multipartBody(t, "file", "photo.png", []byte("fake image bytes"))
	req := httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.Contains(t, result["url"], "/uploads/")

	body, contentType = multipartBody(t, "file", "malware.exe", []byte("nope"))
	req = httptest.NewRequest("POST", "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReconcileEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin, adminToken := app.seedUser(t, models.RoleAdmin, "admin@test.com")

	customer := &models.Customer{FullName: "Kaybolan Firma", Phone: "0212 999 0000"}
	require.NoError(t, app.db.Create(customer).Error)
	repair := &models.Repair{
		CustomerID:   customer.ID,
		CustomerName: customer.FullName,
		DeviceType:   "Fırın",
		Status:       models.StatusPending,
		CreatedBy:    admin.ID,
		Images:       models.StringList{},
	}
	require.NoError(t, app.db.Create(repair).Error)
	require.NoError(t, app.db.Delete(customer).Error)

	w := app.request(t, "POST", "/api/admin/system/reconcile", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["deleted_repairs"])
}
