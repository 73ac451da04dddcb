package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/controllers"
	"storefront-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockCustomerRepo struct {
	customers map[string]*models.CustomerInformation
	nextID    uint
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: map[string]*models.CustomerInformation{}}
}

func (m *mockCustomerRepo) FindByEmail(_ context.Context, email string) (*models.CustomerInformation, error) {
	if c, ok := m.customers[email]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCustomerRepo) Save(_ context.Context, info *models.CustomerInformation) error {
	if info.CustomerID == 0 {
		m.nextID++
		info.CustomerID = m.nextID
	}
	cp := *info
	m.customers[info.Email] = &cp
	return nil
}

func newCustomerRouter(repo *mockCustomerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := zap.NewDevelopment()
	cc := controllers.NewCustomerController(repo, logger)

	r := gin.New()
	r.POST("/checkout", cc.ProcessCheckout)
	return r
}

func postCustomer(r *gin.Engine, info models.CustomerInformation) *httptest.ResponseRecorder {
	body, _ := json.Marshal(info)
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcessCheckout_CreatesCustomer(t *testing.T) {
	repo := newMockCustomerRepo()
	r := newCustomerRouter(repo)

	w := postCustomer(r, models.CustomerInformation{
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Country:  "US",
		City:     "Portland",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.Contains(t, repo.customers, "jane@example.com") {
		saved := repo.customers["jane@example.com"]
		assert.Equal(t, "Jane Doe", saved.FullName)
		assert.NotZero(t, saved.CustomerID)
	}
}

func TestProcessCheckout_UpsertsByEmail(t *testing.T) {
	repo := newMockCustomerRepo()
	r := newCustomerRouter(repo)

	postCustomer(r, models.CustomerInformation{Email: "jane@example.com", FullName: "Jane Doe", City: "Portland"})
	firstID := repo.customers["jane@example.com"].CustomerID

	w := postCustomer(r, models.CustomerInformation{Email: "jane@example.com", FullName: "Jane Q. Doe", City: "Seattle"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.customers, 1)
	saved := repo.customers["jane@example.com"]
	assert.Equal(t, firstID, saved.CustomerID)
	assert.Equal(t, "Jane Q. Doe", saved.FullName)
	assert.Equal(t, "Seattle", saved.City)
}

func TestProcessCheckout_MissingEmail(t *testing.T) {
	repo := newMockCustomerRepo()
	r := newCustomerRouter(repo)

	w := postCustomer(r, models.CustomerInformation{FullName: "No Email"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.customers)
}
