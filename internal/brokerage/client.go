package brokerage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// UpstreamError carries the status and trimmed body of a non-2xx
// upstream response.
type UpstreamError struct {
	Status int
	Body   string
	URL    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %d %s (%s)", e.Status, e.Body, e.URL)
}

const (
	callTimeout = 30 * time.Second
	blobTimeout = 60 * time.Second
)

// Client binds the three transaction-document upstreams: transaction
// metadata, checklists and the file vault. All three authenticate via
// the shared X-API-Key header.
type Client struct {
	apiKey        string
	txBase        string
	checklistBase string
	vaultBase     string
	httpc         *http.Client
	blobc         *http.Client
}

func NewClient(apiKey, txBase, checklistBase, vaultBase string) *Client {
	return &Client{
		apiKey:        apiKey,
		txBase:        strings.TrimRight(txBase, "/"),
		checklistBase: strings.TrimRight(checklistBase, "/"),
		vaultBase:     strings.TrimRight(vaultBase, "/"),
		httpc:         &http.Client{Timeout: callTimeout},
		blobc:         &http.Client{Timeout: blobTimeout},
	}
}

func (c *Client) get(ctx context.Context, base, path string) (*http.Response, error) {
	url := base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body)), URL: url}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, base, path string, out any) error {
	resp, err := c.get(ctx, base, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}

// Download-URL endpoints answer with a JSON-quoted string body.
func (c *Client) getQuotedString(ctx context.Context, base, path string) (string, error) {
	resp, err := c.get(ctx, base, path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(b)), `"`), nil
}

// GetTransaction fetches transaction metadata by id.
func (c *Client) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	var tx Transaction
	if err := c.getJSON(ctx, c.txBase, "/api/v1/transactions/"+id, &tx); err != nil {
		return Transaction{}, err
	}
	if tx.Address.Line == "" {
		tx.Address.Line = "Unknown Address"
	}
	return tx, nil
}

// GetChecklistItems returns the checklist's items; a transaction with
// no checklist yields an empty list.
func (c *Client) GetChecklistItems(ctx context.Context, checklistID string) ([]ChecklistItem, error) {
	if checklistID == "" {
		return nil, nil
	}
	var out struct {
		Items []ChecklistItem `json:"items"`
	}
	if err := c.getJSON(ctx, c.checklistBase, "/api/v1/checklists/"+checklistID, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GetDocumentDownloadURL resolves the download URL for one checklist
// document version.
func (c *Client) GetDocumentDownloadURL(ctx context.Context, versionID string) (string, error) {
	return c.getQuotedString(ctx, c.checklistBase, "/api/v1/checklists/checklist-documents/versions/"+versionID+"/download")
}

// ListVaultFiles lists a vault container. A missing container is an
// empty list, not an error: transactions may have no vault attached.
func (c *Client) ListVaultFiles(ctx context.Context, vaultID string) ([]VaultFile, error) {
	if vaultID == "" {
		return nil, nil
	}
	var out struct {
		Files []VaultFile `json:"files"`
	}
	err := c.getJSON(ctx, c.vaultBase, "/api/v1/vaults/"+vaultID, &out)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return out.Files, nil
}

// GetFileDownloadURL resolves the attachment URL for one vault file.
func (c *Client) GetFileDownloadURL(ctx context.Context, fileID string) (string, error) {
	return c.getQuotedString(ctx, c.vaultBase, "/api/v1/files/"+fileID+"/url?downloadAsAttachment=true")
}

// DownloadContent fetches file bytes from a resolved download URL.
// These URLs are pre-signed, so no API key is attached.
func (c *Client) DownloadContent(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.blobc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: "file download failed", URL: url}
	}
	return io.ReadAll(resp.Body)
}

// AgentTransactionPage is one page of an agent's transaction listing.
type AgentTransactionPage struct {
	Transactions []AgentTransaction `json:"transactions"`
	HasNext      bool               `json:"hasNext"`
}

type AgentTransaction struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
}

// Identifier tolerates both id field spellings the listing uses.
func (t AgentTransaction) Identifier() string {
	if t.ID != "" {
		return t.ID
	}
	return t.TransactionID
}

const agentPageSize = 100

// ListAgentTransactions pages through an agent's transactions in one
// lifecycle group, most recently updated first, until the upstream
// reports no further pages.
func (c *Client) ListAgentTransactions(ctx context.Context, yentaID, lifecycle string) ([]AgentTransaction, error) {
	var all []AgentTransaction
	for page := 0; ; page++ {
		path := "/api/v1/transactions/participant/" + yentaID + "/transactions/" + lifecycle +
			"?pageNumber=" + strconv.Itoa(page) +
			"&pageSize=" + strconv.Itoa(agentPageSize) +
			"&sortBy=UPDATED_AT&sortDirection=DESC"
		var out AgentTransactionPage
		if err := c.getJSON(ctx, c.txBase, path, &out); err != nil {
			return nil, err
		}
		all = append(all, out.Transactions...)
		if !out.HasNext || len(out.Transactions) == 0 {
			return all, nil
		}
	}
}
