package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dfarias/fincontrol/internal/money"
	"github.com/dfarias/fincontrol/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/by-category", h.byCategory)
	r.Get("/cash-flow", h.cashFlow)
	r.Get("/ranking", h.ranking)
	r.Get("/contact-search", h.contactSearch)
}

// filterFromQuery reads the optional due-date range bounds.
func filterFromQuery(r *http.Request) report.Filter {
	var filter report.Filter

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

	return filter
}

type summaryResponse struct {
	NetBalance      decimal.Decimal `json:"net_balance"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	TotalOverdue    decimal.Decimal `json:"total_overdue"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("summary query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)

		return
	}

	resp := summaryResponse{
		NetBalance:      money.Decimal(summary.NetBalance),
		TotalReceivable: money.Decimal(summary.TotalReceivable),
		TotalPayable:    money.Decimal(summary.TotalPayable),
		TotalOverdue:    money.Decimal(summary.TotalOverdue),
	}

	writeJSON(w, resp)
}

type categoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.TotalsByCategory(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("category totals query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)

		return
	}

	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{Category: t.Category, Total: money.Decimal(t.Total)}
	}

	writeJSON(w, resp)
}

type monthlyFlowResponse struct {
	Month    string          `json:"month"`
	Receitas decimal.Decimal `json:"receitas"`
	Despesas decimal.Decimal `json:"despesas"`
}

func (h *Handler) cashFlow(w http.ResponseWriter, r *http.Request) {
	flows, err := h.svc.MonthlyCashFlow(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.Error("cash flow query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)

		return
	}

	resp := make([]monthlyFlowResponse, len(flows))
	for i, f := range flows {
		resp[i] = monthlyFlowResponse{
			Month:    f.Month,
			Receitas: money.Decimal(f.Income),
			Despesas: money.Decimal(f.Expense),
		}
	}

	writeJSON(w, resp)
}

type rankingEntryResponse struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

type rankingResponse struct {
	Debtors   []rankingEntryResponse `json:"debtors"`
	Creditors []rankingEntryResponse `json:"creditors"`
}

func (h *Handler) ranking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.svc.Ranking(r.Context())
	if err != nil {
		slog.Error("ranking query failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)

		return
	}

	resp := rankingResponse{
		Debtors:   toRankingEntries(ranking.Debtors),
		Creditors: toRankingEntries(ranking.Creditors),
	}

	writeJSON(w, resp)
}

func toRankingEntries(entries []report.RankingEntry) []rankingEntryResponse {
	resp := make([]rankingEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = rankingEntryResponse{Name: e.Name, Total: money.Decimal(e.Total)}
	}

	return resp
}

type contactBalanceResponse struct {
	Name       string          `json:"name"`
	Receivable decimal.Decimal `json:"receivable"`
	Payable    decimal.Decimal `json:"payable"`
}

func (h *Handler) contactSearch(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.SearchContacts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("contact search failed", "error", err)
		http.Error(w, "query failed", http.StatusInternalServerError)

		return
	}

	resp := make([]contactBalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = contactBalanceResponse{
			Name:       b.Name,
			Receivable: money.Decimal(b.Receivable),
			Payable:    money.Decimal(b.Payable),
		}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
