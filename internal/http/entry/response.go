package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dfarias/fincontrol/internal/ledger"
	"github.com/dfarias/fincontrol/internal/money"
)

type entryResponse struct {
	ID                int64           `json:"id"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           string          `json:"due_date"`
	PaymentDate       *string         `json:"payment_date,omitempty"`
	Type              ledger.Type     `json:"type"`
	Status            ledger.Status   `json:"status"`
	GroupID           *uuid.UUID      `json:"group_id,omitempty"`
	InstallmentNumber int             `json:"installment_number"`
	InstallmentTotal  int             `json:"installment_total"`
	CategoryID        int64           `json:"category_id"`
	ContactID         int64           `json:"contact_id"`
	AccountID         int64           `json:"account_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toResponse(e *ledger.Entry) entryResponse {
	resp := entryResponse{
		ID:                e.ID,
		Description:       e.Description,
		Amount:            money.Decimal(e.Amount),
		DueDate:           e.DueDate.Format(time.DateOnly),
		Type:              e.Type,
		Status:            e.Status,
		GroupID:           e.GroupID,
		InstallmentNumber: e.InstallmentNumber,
		InstallmentTotal:  e.InstallmentTotal,
		CategoryID:        e.CategoryID,
		ContactID:         e.ContactID,
		AccountID:         e.AccountID,
		CreatedAt:         e.CreatedAt,
	}

	if e.PaymentDate != nil {
		paid := e.PaymentDate.Format(time.DateOnly)
		resp.PaymentDate = &paid
	}

	return resp
}

func toResponseList(entries []*ledger.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

type attachmentResponse struct {
	ID         int64     `json:"id"`
	EntryID    int64     `json:"entry_id"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func toAttachmentResponseList(attachments []*ledger.Attachment) []attachmentResponse {
	resp := make([]attachmentResponse, len(attachments))
	for i, att := range attachments {
		resp[i] = attachmentResponse{
			ID:         att.ID,
			EntryID:    att.EntryID,
			FileName:   att.FileName,
			UploadedAt: att.UploadedAt,
		}
	}

	return resp
}
