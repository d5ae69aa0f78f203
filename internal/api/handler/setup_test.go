package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/salon_go_server/config"
	"github.com/qs3c/salon_go_server/internal/api/middleware"
	"github.com/qs3c/salon_go_server/internal/model"
	"github.com/qs3c/salon_go_server/internal/pkg/response"
	"github.com/qs3c/salon_go_server/internal/plan"
	"github.com/qs3c/salon_go_server/internal/repository"
	"github.com/qs3c/salon_go_server/internal/service"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContext holds a seeded salon and every service wired over it.
type testContext struct {
	DB    *gorm.DB
	Salon *testutil.Salon

	Subscriptions *service.SubscriptionService
	Appointments  *service.AppointmentService
	Professionals *service.ProfessionalService
	Clients       *service.ClientService
	Catalog       *service.CatalogService
	Finance       *service.FinanceService
	Reports       *service.ReportService
}

func setupHandlers(t *testing.T, subOpts ...func(*model.Subscription)) *testContext {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	companyRepo := repository.NewCompanyRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	proRepo := repository.NewProfessionalRepository(db)
	clientRepo := repository.NewClientRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	ctx := &testContext{DB: db, Salon: testutil.TestSalon(t, db, subOpts...)}
	ctx.Subscriptions = service.NewSubscriptionService(subRepo, companyRepo, proRepo, plan.NewCatalog(plan.DefaultTiers), nil, nil, time.UTC)
	ctx.Finance = service.NewFinanceService(txRepo, apptRepo, companyRepo, ctx.Subscriptions, nil, time.UTC)
	ctx.Appointments = service.NewAppointmentService(apptRepo, clientRepo, proRepo, catalogRepo, companyRepo, ctx.Subscriptions,
		ctx.Finance, nil, nil, config.ScheduleConfig{DefaultStartHour: 8, DefaultEndHour: 20, EnforceTransitions: true}, time.UTC)
	ctx.Professionals = service.NewProfessionalService(proRepo, ctx.Subscriptions, nil)
	ctx.Clients = service.NewClientService(clientRepo, nil)
	ctx.Catalog = service.NewCatalogService(catalogRepo, nil)
	ctx.Reports = service.NewReportService(apptRepo, proRepo, companyRepo, ctx.Finance, ctx.Subscriptions, nil, time.UTC)

	return ctx
}

func (ctx *testContext) companyID() int64 {
	return ctx.Salon.Company.ID
}

// mockAuth stands in for the JWT middleware.
func mockAuth(companyID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, int64(1))
		c.Set(middleware.CompanyIDKey, companyID)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

// decodeData unmarshals the envelope's data into dest.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) response.Response {
	t.Helper()
	var resp struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, dest))
	return resp.Response
}
