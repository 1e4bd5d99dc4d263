package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dfarias/fincontrol/internal/ledger"
	"github.com/dfarias/fincontrol/internal/money"
)

// maxAttachmentSize caps uploads at 10 MiB.
const maxAttachmentSize = 10 << 20

type Handler struct {
	svc        *ledger.Service
	uploadsDir string
}

func NewHandler(svc *ledger.Service, uploadsDir string) *Handler {
	return &Handler{svc: svc, uploadsDir: uploadsDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/sweep-overdue", h.sweepOverdue)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Patch("/{id}/pay", h.pay)
	r.Patch("/{id}/cancel", h.cancel)
	r.Post("/{id}/attachments", h.uploadAttachment)
	r.Get("/{id}/attachments", h.listAttachments)
}

type createEntryRequest struct {
	Description  string      `json:"description"`
	Amount       string      `json:"amount"`
	DueDate      string      `json:"due_date"`
	Type         ledger.Type `json:"type"`
	CategoryID   int64       `json:"category_id"`
	ContactID    int64       `json:"contact_id"`
	AccountID    int64       `json:"account_id"`
	Split        bool        `json:"split"`
	Installments int         `json:"installments"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if req.CategoryID <= 0 || req.ContactID <= 0 || req.AccountID <= 0 {
		http.Error(w, "category_id, contact_id and account_id are required", http.StatusBadRequest)
		return
	}

	installments := req.Installments
	if installments == 0 {
		installments = 1
	}

	entries, err := h.svc.Create(r.Context(), ledger.SplitParams{
		Description:  req.Description,
		Amount:       amount,
		DueDate:      dueDate,
		Type:         req.Type,
		CategoryID:   req.CategoryID,
		ContactID:    req.ContactID,
		AccountID:    req.AccountID,
		Split:        req.Split,
		Installments: installments,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := ledger.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("type"); s != "" {
		entryType := ledger.Type(s)
		filter.Type = &entryType
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	attachments, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Attachment rows are already gone; remove the files too.
	for _, att := range attachments {
		if err := os.Remove(att.StoredPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove attachment file", "path", att.StoredPath, "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

type payRequest struct {
	PaymentDate string `json:"payment_date,omitempty"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	paidOn := time.Now()

	if req.PaymentDate != "" {
		paidOn, err = time.Parse(time.DateOnly, req.PaymentDate)
		if err != nil {
			http.Error(w, "invalid payment_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	e, err := h.svc.MarkPaid(r.Context(), id, paidOn)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Cancel(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) sweepOverdue(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkOverdue(r.Context(), time.Now())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]int64{"updated": n}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAttachmentSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	storedName := fmt.Sprintf("%s%s", uuid.New(), filepath.Ext(header.Filename))
	storedPath := filepath.Join(h.uploadsDir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		slog.Error("failed to create attachment file", "path", storedPath, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(storedPath)
		http.Error(w, "failed to store file", http.StatusInternalServerError)

		return
	}

	att := &ledger.Attachment{
		EntryID:    id,
		FileName:   header.Filename,
		StoredPath: storedPath,
	}

	if err := h.svc.AddAttachment(r.Context(), att); err != nil {
		os.Remove(storedPath)
		respondDomainError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toAttachmentResponseList([]*ledger.Attachment{att})[0]); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listAttachments(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	attachments, err := h.svc.ListAttachments(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toAttachmentResponseList(attachments)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "entry not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrInvalidTransition), errors.Is(err, ledger.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
