package matter

import (
	"strings"

	"github.com/advoga/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientType distinguishes natural persons from organizations
type ClientType string

const (
	ClientTypeIndividual   ClientType = "INDIVIDUAL"
	ClientTypeOrganization ClientType = "ORGANIZATION"
)

// IsValid checks if the client type is valid
func (t ClientType) IsValid() bool {
	return t == ClientTypeIndividual || t == ClientTypeOrganization
}

// ClientStatus represents the client's standing with the firm
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "ACTIVE"
	ClientStatusInactive ClientStatus = "INACTIVE"
)

// IsValid checks if the client status is valid
func (s ClientStatus) IsValid() bool {
	return s == ClientStatusActive || s == ClientStatusInactive
}

// Client is a tenant-scoped party the firm represents
type Client struct {
	shared.TenantAggregateRoot
	Name     string
	Document string
	Type     ClientType
	Email    string
	Phone    string
	Address  string
	Status   ClientStatus
}

// NewClient creates a new client for a tenant
func NewClient(tenantID uuid.UUID, name, document string, clientType ClientType) (*Client, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("name", "name is required")
	}
	if clientType == "" {
		clientType = ClientTypeIndividual
	}
	if !clientType.IsValid() {
		return nil, shared.NewValidationError("type", "invalid client type: "+string(clientType))
	}

	return &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Document:            strings.TrimSpace(document),
		Type:                clientType,
		Status:              ClientStatusActive,
	}, nil
}
