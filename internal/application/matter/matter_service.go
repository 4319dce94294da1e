package matter

import (
	"context"
	"time"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/google/uuid"
)

// MatterService provides application-level case and client operations
type MatterService struct {
	caseRepo   matter.CaseRepository
	clientRepo matter.ClientRepository
}

// NewMatterService creates a new MatterService
func NewMatterService(caseRepo matter.CaseRepository, clientRepo matter.ClientRepository) *MatterService {
	return &MatterService{
		caseRepo:   caseRepo,
		clientRepo: clientRepo,
	}
}

// CaseResponse represents a legal case in API responses
type CaseResponse struct {
	ID           uuid.UUID          `json:"id"`
	CaseNumber   string             `json:"case_number"`
	Title        string             `json:"title"`
	Area         string             `json:"area,omitempty"`
	Phase        string             `json:"phase,omitempty"`
	Status       string             `json:"status"`
	Court        string             `json:"court,omitempty"`
	RulingBody   string             `json:"ruling_body,omitempty"`
	ProcessClass string             `json:"process_class,omitempty"`
	FiledAt      *time.Time         `json:"filed_at,omitempty"`
	SyncedAt     *time.Time         `json:"synced_at,omitempty"`
	ClientID     *uuid.UUID         `json:"client_id,omitempty"`
	ClientName   string             `json:"client_name,omitempty"`
	Movements    []MovementResponse `json:"movements"`
	CreatedAt    time.Time          `json:"created_at"`
}

// MovementResponse represents one court movement in API responses
type MovementResponse struct {
	Code       int       `json:"code"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CreateCaseRequest represents a request to register a legal case
type CreateCaseRequest struct {
	CaseNumber string     `json:"case_number" binding:"required"`
	Title      string     `json:"title" binding:"required"`
	Area       string     `json:"area"`
	ClientID   *uuid.UUID `json:"client_id"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Type      string    `json:"type"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CreateCase registers a legal case for a tenant
func (s *MatterService) CreateCase(ctx context.Context, tenantID uuid.UUID, req CreateCaseRequest) (*CaseResponse, error) {
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
	}

	legalCase, err := matter.NewLegalCase(tenantID, req.CaseNumber, req.Title, req.Area, req.ClientID)
	if err != nil {
		return nil, err
	}
	if err := s.caseRepo.Save(ctx, legalCase); err != nil {
		return nil, err
	}
	return toCaseResponse(legalCase, ""), nil
}

// ListCases lists a tenant's cases with their recent movements and the
// client's name resolved.
func (s *MatterService) ListCases(ctx context.Context, tenantID uuid.UUID) ([]CaseResponse, error) {
	cases, err := s.caseRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	clientIDs := make([]uuid.UUID, 0, len(cases))
	for i := range cases {
		if cases[i].ClientID != nil {
			clientIDs = append(clientIDs, *cases[i].ClientID)
		}
	}
	clients := map[uuid.UUID]matter.Client{}
	if len(clientIDs) > 0 {
		if clients, err = s.clientRepo.FindByIDs(ctx, tenantID, clientIDs); err != nil {
			return nil, err
		}
	}

	responses := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		clientName := ""
		if cases[i].ClientID != nil {
			if c, ok := clients[*cases[i].ClientID]; ok {
				clientName = c.Name
			}
		}
		responses = append(responses, *toCaseResponse(&cases[i], clientName))
	}
	return responses, nil
}

// CreateClient registers a client for a tenant
func (s *MatterService) CreateClient(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := matter.NewClient(tenantID, req.Name, req.Document, matter.ClientType(req.Type))
	if err != nil {
		return nil, err
	}
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// ListClients lists a tenant's clients
func (s *MatterService) ListClients(ctx context.Context, tenantID uuid.UUID) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *toClientResponse(&clients[i]))
	}
	return responses, nil
}

func toCaseResponse(c *matter.LegalCase, clientName string) *CaseResponse {
	movements := make([]MovementResponse, 0, len(c.Movements))
	for _, m := range c.Movements {
		movements = append(movements, MovementResponse{
			Code:       m.Code,
			Name:       m.Name,
			OccurredAt: m.OccurredAt,
		})
	}
	return &CaseResponse{
		ID:           c.ID,
		CaseNumber:   c.CaseNumber,
		Title:        c.Title,
		Area:         c.Area,
		Phase:        c.Phase,
		Status:       c.Status.String(),
		Court:        c.Court,
		RulingBody:   c.RulingBody,
		ProcessClass: c.ProcessClass,
		FiledAt:      c.FiledAt,
		SyncedAt:     c.SyncedAt,
		ClientID:     c.ClientID,
		ClientName:   clientName,
		Movements:    movements,
		CreatedAt:    c.CreatedAt,
	}
}

func toClientResponse(c *matter.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Document:  c.Document,
		Type:      string(c.Type),
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}
