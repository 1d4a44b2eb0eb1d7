package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"financetracker/internal/finance/application"
	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

func TestGetTransactions_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/transaction", "")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{
		transactions: []application.TransactionView{
			{ID: 2, Amount: decimal.NewFromInt(120), Type: "Expense", CategoryID: 3, CategoryName: "Groceries"},
			{ID: 1, Amount: decimal.NewFromInt(2500), Type: "Income", CategoryID: 2, CategoryName: "Salary"},
		},
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "date", mockService.lastSortBy)
	assert.Equal(t, "desc", mockService.lastSortOrder)

	var response struct {
		Status string                        `json:"status"`
		Data   []application.TransactionView `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Len(t, response.Data, 2)
	assert.Equal(t, "Groceries", response.Data[0].CategoryName)
}

func TestGetTransactions_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/protected/transaction", nil)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransactions(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	req := authenticatedRequest(http.MethodGet, "/api/protected/transaction/77", "")
	req.SetPathValue("id", "77")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: financeErrors.ErrTransactionNotFound}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetTransactionByID(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Transaction not found", response["message"])
}

func TestCreateTransaction_Success(t *testing.T) {
	body := `{"amount":"2500.50","date":"2026-08-01T10:00:00Z","type":"Income","category_id":2}`
	req := authenticatedRequest(http.MethodPost, "/api/protected/transaction", body)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{
		transaction: &application.TransactionView{
			ID:           1,
			Amount:       decimal.RequireFromString("2500.50"),
			Type:         "Income",
			CategoryID:   2,
			CategoryName: "Salary",
		},
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, domain.TransactionTypeIncome, mockService.lastInput.Type)
	assert.Equal(t, 2, mockService.lastInput.CategoryID)
	assert.True(t, mockService.lastInput.Amount.Equal(decimal.RequireFromString("2500.50")))
	assert.True(t, mockService.lastInput.Date.Equal(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)))
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	body := `{"amount":"10","date":"2026-08-01T10:00:00Z","type":"Transfer","category_id":2}`
	req := authenticatedRequest(http.MethodPost, "/api/protected/transaction", body)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid transaction type", response["message"])
}

func TestCreateTransaction_TypeMismatch(t *testing.T) {
	body := `{"amount":"10","date":"2026-08-01T10:00:00Z","type":"Expense","category_id":2}`
	req := authenticatedRequest(http.MethodPost, "/api/protected/transaction", body)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: financeErrors.ErrTypeMismatch}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Category type does not match transaction type", response["message"])
}

func TestCreateTransaction_ForeignCategory(t *testing.T) {
	body := `{"amount":"10","date":"2026-08-01T10:00:00Z","type":"Expense","category_id":99}`
	req := authenticatedRequest(http.MethodPost, "/api/protected/transaction", body)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: financeErrors.ErrInvalidCategory}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Category not found or unauthorized", response["message"])
}

func TestUpdateTransaction_Success(t *testing.T) {
	body := `{"amount":"42.00","date":"2026-08-02T00:00:00Z","type":"Expense","category_id":3}`
	req := authenticatedRequest(http.MethodPut, "/api/protected/transaction/5", body)
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, domain.TransactionTypeExpense, mockService.lastInput.Type)
	assert.Equal(t, 3, mockService.lastInput.CategoryID)
}

func TestUpdateTransaction_InvalidID(t *testing.T) {
	req := authenticatedRequest(http.MethodPut, "/api/protected/transaction/oops", `{}`)
	req.SetPathValue("id", "oops")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/protected/transaction/5", "")
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, 5, mockService.deletedID)
}

func TestDeleteTransaction_ServiceError(t *testing.T) {
	req := authenticatedRequest(http.MethodDelete, "/api/protected/transaction/5", "")
	req.SetPathValue("id", "5")
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{err: assert.AnError}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
