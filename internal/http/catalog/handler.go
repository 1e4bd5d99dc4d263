package catalog

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dfarias/fincontrol/internal/catalog"
	"github.com/dfarias/fincontrol/internal/money"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.createCategory)
		r.Get("/", h.listCategories)
		r.Get("/{id}", h.getCategory)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.createContact)
		r.Get("/", h.listContacts)
		r.Get("/{id}", h.getContact)
	})

	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.createAccount)
		r.Get("/", h.listAccounts)
		r.Get("/{id}", h.getAccount)
	})
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &catalog.Category{Name: req.Name, Description: req.Description}
	if err := h.svc.CreateCategory(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
}

type contactRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type contactResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &catalog.Contact{Name: req.Name, Document: req.Document, Email: req.Email, Phone: req.Phone}
	if err := h.svc.CreateContact(r.Context(), c); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactResponse(c))
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListContacts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toContactResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.GetContact(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(c))
}

func toContactResponse(c *catalog.Contact) contactResponse {
	return contactResponse{ID: c.ID, Name: c.Name, Document: c.Document, Email: c.Email, Phone: c.Phone}
}

type accountRequest struct {
	Description    string `json:"description"`
	BankName       string `json:"bank_name"`
	OpeningBalance string `json:"opening_balance"`
}

type accountResponse struct {
	ID             int64           `json:"id"`
	Description    string          `json:"description"`
	BankName       string          `json:"bank_name,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var balance int64

	if req.OpeningBalance != "" {
		var err error

		balance, err = money.ParseAmount(req.OpeningBalance)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	a := &catalog.BankAccount{Description: req.Description, BankName: req.BankName, OpeningBalance: balance}
	if err := h.svc.CreateAccount(r.Context(), a); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toAccountResponse(a)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(a))
}

func toAccountResponse(a *catalog.BankAccount) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Description:    a.Description,
		BankName:       a.BankName,
		OpeningBalance: money.Decimal(a.OpeningBalance),
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
