package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/splittab/internal/adapter/http/dto"
	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error)
	EditTransaction(ctx context.Context, input usecase.EditTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	SettleUp(ctx context.Context, viewpoint, other domain.Member) (*domain.Transaction, error)
}

// TransactionHandler handles transaction write HTTP requests.
type TransactionHandler struct {
	txUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txUC: txUC}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tx, err := h.txUC.AddTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Update edits the amount, note or date of an existing transaction.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.EditTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	tx, err := h.txUC.EditTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Delete removes a transaction by ID.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	if err := h.txUC.DeleteTransaction(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SettleUp records the repayment that zeroes a pair's balance. Returns
// 201 with the settlement, or 200 with a null settlement when the pair
// was already even.
func (h *TransactionHandler) SettleUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SettleUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.txUC.SettleUp(r.Context(), domain.Member(req.Viewpoint), domain.Member(req.Other))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if settlement == nil {
		writeJSON(w, http.StatusOK, dto.SettleUpResponse{Settled: true})
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettleUpResponse{
		Settlement: dto.TransactionFromDomain(settlement),
		Settled:    true,
	})
}
