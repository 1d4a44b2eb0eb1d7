package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"financetracker/internal/finance/application"
	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

func authenticatedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", "8a9f2f3e-0f64-4d52-b4b3-0de1c42a6a11"))
}

func TestGetCategories_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category?sortBy=type&sortOrder=desc", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		categories: []application.CategoryView{
			{ID: 1, Name: "WITHOUT CATEGORY", Type: "Neutral", TransactionCount: 0},
			{ID: 2, Name: "Salary", Type: "Income", TransactionCount: 3},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "type", mockService.lastSortBy)
	assert.Equal(t, "desc", mockService.lastSortOrder)

	var response struct {
		Status string                     `json:"status"`
		Data   []application.CategoryView `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, "Salary", response.Data[1].Name)
}

func TestGetCategories_DefaultSortParams(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategories(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "name", mockService.lastSortBy)
	assert.Equal(t, "asc", mockService.lastSortOrder)
}

func TestGetCategories_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/protected/category", nil)
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.GetCategories(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetCategoryByID_NotFound(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category/42", "")
	req.SetPathValue("id", "42")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.ErrCategoryNotFound}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategoryByID(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Category not found", response["message"])
}

func TestGetCategoryByID_InvalidID(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category/abc", "")
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.GetCategoryByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetCategoryTransactions_PassesPagination(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category/3/transactions?skip=10&take=25", "")
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategoryTransactions(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, 10, mockService.lastSkip)
	assert.Equal(t, 25, mockService.lastTake)
}

func TestGetCategoryTransactions_DefaultPagination(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/category/3/transactions?skip=oops", "")
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategoryTransactions(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, 0, mockService.lastSkip)
	assert.Equal(t, 50, mockService.lastTake)
}

func TestCreateCategory_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodPost, "/api/protected/category", `{"name":"Groceries","type":"Expense"}`)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		category: &application.CategoryView{ID: 5, Name: "Groceries", Type: "Expense"},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Groceries", mockService.updatedName)
	assert.Equal(t, domain.CategoryTypeExpense, mockService.updatedType)
}

func TestCreateCategory_InvalidType(t *testing.T) {
	req := authenticatedRequest(http.MethodPost, "/api/protected/category", `{"name":"Groceries","type":"Savings"}`)
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid category type", response["message"])
}

func TestCreateCategory_ValidationError(t *testing.T) {
	req := authenticatedRequest(http.MethodPost, "/api/protected/category", `{"name":"  ","type":"Income"}`)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.NewValidationError("Category name cannot be empty")}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Category name cannot be empty", response["message"])
}

func TestUpdateCategory_DefaultImmutable(t *testing.T) {
	req := authenticatedRequest(http.MethodPut, "/api/protected/category/1", `{"name":"Renamed","type":"Income"}`)
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.ErrDefaultCategoryImmutable}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.UpdateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "The default category cannot be modified", response["message"])
}

func TestUpdateCategory_InvalidBody(t *testing.T) {
	req := authenticatedRequest(http.MethodPut, "/api/protected/category/2", `{"name":`)
	req.SetPathValue("id", "2")
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.UpdateCategory(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeleteCategory_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/protected/category/9", "")
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, 9, mockService.deletedID)
}

func TestDeleteCategory_MissingDefault(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/protected/category/9", "")
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.ErrDefaultCategoryMissing}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Default category not found", response["message"])
}

func TestDeleteCategory_ServiceError(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/protected/category/9", "")
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: assert.AnError}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
