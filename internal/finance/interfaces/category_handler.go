package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"financetracker/internal/finance/application"
	"financetracker/internal/finance/domain"
	financeErrors "financetracker/internal/finance/errors"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, userID, sortBy, sortOrder string) ([]application.CategoryView, error)
	GetCategoryByID(ctx context.Context, categoryID int, userID string) (*application.CategoryView, error)
	GetCategoryTransactions(ctx context.Context, categoryID int, userID string, skip, take int) ([]application.TransactionView, error)
	CreateCategory(ctx context.Context, userID, name string, categoryType domain.CategoryType) (*application.CategoryView, error)
	UpdateCategory(ctx context.Context, categoryID int, userID, name string, categoryType domain.CategoryType) error
	DeleteCategory(ctx context.Context, categoryID int, userID string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sortBy := queryParam(r, "sortBy", "name")
	sortOrder := queryParam(r, "sortOrder", "asc")

	categories, err := h.service.GetCategories(r.Context(), userID, sortBy, sortOrder)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   categories,
	})
}

func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.service.GetCategoryByID(r.Context(), categoryID, userID)
	if err != nil {
		h.respondCategoryError(w, err, "Failed to retrieve category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   category,
	})
}

func (h *CategoryHandler) GetCategoryTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	skip := intQueryParam(r, "skip", 0)
	take := intQueryParam(r, "take", 50)

	transactions, err := h.service.GetCategoryTransactions(r.Context(), categoryID, userID, skip, take)
	if err != nil {
		h.respondCategoryError(w, err, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transactions,
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	categoryType, ok := domain.ParseCategoryType(req.Type)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), userID, req.Name, categoryType)
	if err != nil {
		h.respondCategoryError(w, err, "Failed to create category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	categoryType, ok := domain.ParseCategoryType(req.Type)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}

	if err := h.service.UpdateCategory(r.Context(), categoryID, userID, req.Name, categoryType); err != nil {
		h.respondCategoryError(w, err, "Failed to update category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully updated.",
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	categoryID, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		h.respondCategoryError(w, err, "Failed to delete category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}

func (h *CategoryHandler) respondCategoryError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, financeErrors.ErrCategoryNotFound):
		h.respondError(w, http.StatusNotFound, "Category not found")
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("category handler: %v", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func queryParam(r *http.Request, name, fallback string) string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	return value
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
