package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"poskernel/core"
	"poskernel/posserver/services"
)

// TransactionController provides HTTP handlers over the kernel. Every
// handler maps the kernel's error taxonomy onto an HTTP status; bodies
// are JSON with minor-unit integers, never formatted currency.
type TransactionController struct {
	svc *services.KernelService
}

func NewTransactionController(svc *services.KernelService) *TransactionController {
	return &TransactionController{svc: svc}
}

// statusFor translates kernel errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, core.ErrValidation),
		errors.Is(err, core.ErrCurrencyMismatch),
		errors.Is(err, core.ErrOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

func handleVar(r *http.Request) (core.Handle, error) {
	h, err := strconv.ParseUint(mux.Vars(r)["handle"], 10, 64)
	if err != nil {
		return core.InvalidHandle, core.ErrValidation
	}
	return core.Handle(h), nil
}

func (tc *TransactionController) Version(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{"version": tc.svc.Version()})
}

func (tc *TransactionController) Terminal(w http.ResponseWriter, r *http.Request) {
	id, err := tc.svc.TerminalID()
	if err != nil {
		fail(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"terminal_id": id})
}

func (tc *TransactionController) Begin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Store    string `json:"store"`
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h, err := tc.svc.Begin(req.Store, req.Currency)
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]uint64{"handle": uint64(h)})
}

func (tc *TransactionController) Close(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := tc.svc.Close(h); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type lineRequest struct {
	SKU        string `json:"sku"`
	Quantity   int32  `json:"quantity"`
	UnitMinor  int64  `json:"unit_minor"`
	ParentLine int32  `json:"parent_line,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
}

// AddLine appends a root line, a child (parent_line set) or a
// modification (parent_id set). The stable id wins when both are set.
func (tc *TransactionController) AddLine(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var li core.LineItem
	switch {
	case req.ParentID != "":
		li, err = tc.svc.AddModification(h, req.ParentID, req.SKU, req.Quantity, req.UnitMinor)
	case req.ParentLine != 0:
		li, err = tc.svc.AddChildLine(h, req.SKU, req.Quantity, req.UnitMinor, req.ParentLine)
	default:
		li, err = tc.svc.AddLine(h, req.SKU, req.Quantity, req.UnitMinor)
	}
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(li)
}

func (tc *TransactionController) VoidLine(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	var req struct {
		LineItemID string `json:"line_item_id,omitempty"`
		LineNumber int32  `json:"line_number,omitempty"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.LineItemID != "" {
		err = tc.svc.VoidLineByID(h, req.LineItemID, req.Reason)
	} else {
		err = tc.svc.VoidLine(h, req.LineNumber, req.Reason)
	}
	if err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (tc *TransactionController) ModifyLine(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	var req struct {
		LineItemID string `json:"line_item_id"`
		Quantity   *int32 `json:"quantity,omitempty"`
		UnitMinor  *int64 `json:"unit_minor,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	li, err := tc.svc.ModifyLine(h, req.LineItemID, req.Quantity, req.UnitMinor)
	if err != nil {
		fail(w, err)
		return
	}
	json.NewEncoder(w).Encode(li)
}

func (tc *TransactionController) Tender(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	var req struct {
		AmountMinor int64 `json:"amount_minor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := tc.svc.Tender(h, req.AmountMinor)
	if err != nil {
		fail(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"state": state.String()})
}

func (tc *TransactionController) Void(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := tc.svc.VoidTransaction(h); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (tc *TransactionController) Totals(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	tot, err := tc.svc.Totals(h)
	if err != nil {
		fail(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"total_minor":    tot.Total.MinorUnits,
		"tendered_minor": tot.Tendered.MinorUnits,
		"change_minor":   tot.ChangeDue.MinorUnits,
		"currency":       tot.Total.Currency,
		"state":          tot.State.String(),
	})
}

func (tc *TransactionController) Lines(w http.ResponseWriter, r *http.Request) {
	h, err := handleVar(r)
	if err != nil {
		fail(w, err)
		return
	}
	lines, places, err := tc.svc.Lines(h)
	if err != nil {
		fail(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"lines":          lines,
		"decimal_places": places,
	})
}
