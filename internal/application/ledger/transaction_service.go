package ledger

import (
	"context"
	"time"

	"github.com/advoga/backend/internal/domain/ledger"
	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService provides application-level ledger entry operations
type TransactionService struct {
	txRepo     ledger.TransactionRepository
	caseRepo   matter.CaseRepository
	clientRepo matter.ClientRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	txRepo ledger.TransactionRepository,
	caseRepo matter.CaseRepository,
	clientRepo matter.ClientRepository,
) *TransactionService {
	return &TransactionService{
		txRepo:     txRepo,
		caseRepo:   caseRepo,
		clientRepo: clientRepo,
	}
}

// TransactionResponse represents a ledger entry in API responses. Case and
// client references are denormalized for listings so clients do not need a
// second round trip.
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"due_date"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
	CaseID      *uuid.UUID      `json:"case_id,omitempty"`
	CaseNumber  string          `json:"case_number,omitempty"`
	CaseTitle   string          `json:"case_title,omitempty"`
	ClientID    *uuid.UUID      `json:"client_id,omitempty"`
	ClientName  string          `json:"client_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// RecordTransactionRequest represents a request to record a manual ledger entry
type RecordTransactionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	DueDate     *time.Time      `json:"due_date"`
	CaseID      *uuid.UUID      `json:"case_id"`
	ClientID    *uuid.UUID      `json:"client_id"`
}

// TransactionListFilter defines filtering options for ledger listings
type TransactionListFilter struct {
	Status   string `form:"status"`
	Category string `form:"category"`
}

// Record records a manual ledger entry
func (s *TransactionService) Record(ctx context.Context, tenantID uuid.UUID, req RecordTransactionRequest) (*TransactionResponse, error) {
	amount := valueobject.NewMoneyBRL(req.Amount)

	var dueDate time.Time
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	tx, err := ledger.NewTransaction(
		tenantID,
		ledger.TransactionType(req.Type),
		ledger.TransactionCategory(req.Category),
		amount,
		req.Description,
		dueDate,
	)
	if err != nil {
		return nil, err
	}

	if req.CaseID != nil {
		// Attaching a case requires it to belong to the caller's tenant.
		legalCase, err := s.caseRepo.FindByIDForTenant(ctx, tenantID, *req.CaseID)
		if err != nil {
			return nil, err
		}
		clientID := req.ClientID
		if clientID == nil {
			clientID = legalCase.ClientID
		}
		tx.AttachCase(legalCase.ID, clientID)
	} else if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		tx.ClientID = req.ClientID
	}

	if err := s.txRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// MarkPaid transitions a pending entry to paid, stamping the payment date
func (s *TransactionService) MarkPaid(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindActiveByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := tx.MarkPaid(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return toTransactionResponse(tx), nil
}

// List returns the tenant's active entries, newest first, with case and
// client references resolved in one batch per relation.
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, error) {
	txs, err := s.txRepo.FindAllForTenant(ctx, tenantID, ledger.TransactionFilter{
		Status:   ledger.TransactionStatus(filter.Status),
		Category: ledger.TransactionCategory(filter.Category),
	})
	if err != nil {
		return nil, err
	}

	caseIDs := make([]uuid.UUID, 0, len(txs))
	clientIDs := make([]uuid.UUID, 0, len(txs))
	for i := range txs {
		if txs[i].CaseID != nil {
			caseIDs = append(caseIDs, *txs[i].CaseID)
		}
		if txs[i].ClientID != nil {
			clientIDs = append(clientIDs, *txs[i].ClientID)
		}
	}

	cases := map[uuid.UUID]matter.LegalCase{}
	if len(caseIDs) > 0 {
		if cases, err = s.caseRepo.FindByIDs(ctx, tenantID, caseIDs); err != nil {
			return nil, err
		}
	}
	clients := map[uuid.UUID]matter.Client{}
	if len(clientIDs) > 0 {
		if clients, err = s.clientRepo.FindByIDs(ctx, tenantID, clientIDs); err != nil {
			return nil, err
		}
	}

	responses := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		resp := toTransactionResponse(&txs[i])
		if txs[i].CaseID != nil {
			if c, ok := cases[*txs[i].CaseID]; ok {
				resp.CaseNumber = c.CaseNumber
				resp.CaseTitle = c.Title
			}
		}
		if txs[i].ClientID != nil {
			if c, ok := clients[*txs[i].ClientID]; ok {
				resp.ClientName = c.Name
			}
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Summary returns grouped sums over the same active rows List reads
func (s *TransactionService) Summary(ctx context.Context, tenantID uuid.UUID) ([]ledger.GroupedSum, error) {
	return s.txRepo.SumByGroup(ctx, tenantID)
}

func toTransactionResponse(tx *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type.String(),
		Category:    tx.Category.String(),
		Amount:      tx.Amount.Amount(),
		Currency:    string(tx.Amount.Currency()),
		Status:      tx.Status.String(),
		Description: tx.Description,
		DueDate:     tx.DueDate,
		PaidDate:    tx.PaidDate,
		CaseID:      tx.CaseID,
		ClientID:    tx.ClientID,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
		Version:     tx.Version,
	}
}
