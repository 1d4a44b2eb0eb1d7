package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/finance/application"
	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

type TransactionServiceInterface interface {
	GetTransactions(ctx context.Context, userID, sortBy, sortOrder string) ([]application.TransactionView, error)
	GetTransactionByID(ctx context.Context, transactionID int, userID string) (*application.TransactionView, error)
	CreateTransaction(ctx context.Context, userID string, input application.TransactionInput) (*application.TransactionView, error)
	UpdateTransaction(ctx context.Context, transactionID int, userID string, input application.TransactionInput) (*application.TransactionView, error)
	DeleteTransaction(ctx context.Context, transactionID int, userID string) error
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type transactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Type       string          `json:"type"`
	CategoryID int             `json:"category_id"`
}

func (req transactionRequest) toInput() (application.TransactionInput, bool) {
	transactionType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		return application.TransactionInput{}, false
	}
	return application.TransactionInput{
		Amount:     req.Amount,
		Date:       req.Date,
		Type:       transactionType,
		CategoryID: req.CategoryID,
	}, true
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sortBy := queryParam(r, "sortBy", "date")
	sortOrder := queryParam(r, "sortOrder", "desc")

	transactions, err := h.service.GetTransactions(r.Context(), userID, sortBy, sortOrder)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

func (h *TransactionHandler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	transaction, err := h.service.GetTransactionByID(r.Context(), transactionID, userID)
	if err != nil {
		h.respondTransactionError(w, err, "Failed to retrieve transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input, ok := req.toInput()
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	transaction, err := h.service.CreateTransaction(r.Context(), userID, input)
	if err != nil {
		h.respondTransactionError(w, err, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	input, ok := req.toInput()
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	transaction, err := h.service.UpdateTransaction(r.Context(), transactionID, userID, input)
	if err != nil {
		h.respondTransactionError(w, err, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	transactionID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
		h.respondTransactionError(w, err, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

func (h *TransactionHandler) respondTransactionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, financeErrors.ErrTransactionNotFound):
		h.respondError(w, http.StatusNotFound, "Transaction not found")
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("transaction handler: %v", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
