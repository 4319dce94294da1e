package courtsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/advoga/backend/internal/domain/matter"
	"github.com/advoga/backend/internal/domain/shared"
	"github.com/advoga/backend/internal/infrastructure/config"
	"github.com/google/uuid"
)

// cnjNumberPattern matches the national case numbering standard:
// NNNNNNN-DD.AAAA.J.TR.OOOO
var cnjNumberPattern = regexp.MustCompile(`^\d{7}-\d{2}\.\d{4}\.(\d)\.(\d{2})\.\d{4}$`)

// stateCourtAliases maps the TR segment of a state-court case number to the
// registry's endpoint alias.
var stateCourtAliases = map[string]string{
	"01": "tjac", "02": "tjal", "03": "tjap", "04": "tjam", "05": "tjba",
	"06": "tjce", "07": "tjdft", "08": "tjes", "09": "tjgo", "10": "tjma",
	"11": "tjmt", "12": "tjms", "13": "tjmg", "14": "tjpa", "15": "tjpb",
	"16": "tjpr", "17": "tjpe", "18": "tjpi", "19": "tjrj", "20": "tjrn",
	"21": "tjrs", "22": "tjro", "23": "tjrr", "24": "tjsc", "25": "tjse",
	"26": "tjsp", "27": "tjto",
}

// CourtAlias derives the registry endpoint alias from a CNJ case number.
// Federal courts resolve to trf1..trf6, labor courts to trtN, state courts
// via the TR segment.
func CourtAlias(caseNumber string) (string, error) {
	m := cnjNumberPattern.FindStringSubmatch(caseNumber)
	if m == nil {
		return "", shared.NewValidationError("case_number", "case number does not follow the national numbering standard")
	}
	justice, court := m[1], m[2]
	switch justice {
	case "4":
		return "trf" + court[1:], nil
	case "5":
		return "trt" + court, nil
	case "8":
		alias, ok := stateCourtAliases[court]
		if !ok {
			return "", shared.NewValidationError("case_number", "unknown state court segment: "+court)
		}
		return alias, nil
	default:
		return "", shared.NewValidationError("case_number", "unsupported justice segment: "+justice)
	}
}

// Client fetches case metadata and movements from the public court registry.
// The registry exposes one Elasticsearch-style search endpoint per court.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a new registry client
func NewClient(cfg *config.CourtSyncConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

type searchRequest struct {
	Query struct {
		Match struct {
			NumeroProcesso string `json:"numeroProcesso"`
		} `json:"match"`
	} `json:"query"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				Tribunal string `json:"tribunal"`
				Classe   struct {
					Nome string `json:"nome"`
				} `json:"classe"`
				OrgaoJulgador struct {
					Nome string `json:"nome"`
				} `json:"orgaoJulgador"`
				DataAjuizamento string `json:"dataAjuizamento"`
				Movimentos      []struct {
					Codigo   int    `json:"codigo"`
					Nome     string `json:"nome"`
					DataHora string `json:"dataHora"`
				} `json:"movimentos"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// FetchCase queries the registry for a case number and returns the fetched
// metadata and movements. A case number the registry does not know yields
// NOT_FOUND.
func (c *Client) FetchCase(ctx context.Context, caseNumber string) (*matter.SyncOutcome, error) {
	alias, err := CourtAlias(caseNumber)
	if err != nil {
		return nil, err
	}

	var reqBody searchRequest
	reqBody.Query.Match.NumeroProcesso = caseNumber
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api_publica_%s/_search", c.baseURL, alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "APIKey "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}
	if len(parsed.Hits.Hits) == 0 {
		return nil, shared.NewDomainError(shared.ErrCodeNotFound,
			"case not found in the court registry: "+caseNumber)
	}

	source := parsed.Hits.Hits[0].Source
	outcome := &matter.SyncOutcome{
		Court:        source.Tribunal,
		RulingBody:   source.OrgaoJulgador.Nome,
		ProcessClass: source.Classe.Nome,
	}
	if filedAt, err := time.Parse(time.RFC3339, source.DataAjuizamento); err == nil {
		outcome.FiledAt = &filedAt
	}
	for _, mv := range source.Movimentos {
		occurredAt, err := time.Parse(time.RFC3339, mv.DataHora)
		if err != nil {
			continue
		}
		outcome.Movements = append(outcome.Movements,
			matter.NewCaseMovement(uuid.Nil, mv.Codigo, mv.Nome, occurredAt))
	}
	return outcome, nil
}
