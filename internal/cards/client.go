package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Inspection is the distilled view of a BI card: its title, the
// native SQL behind it, and the result columns.
type Inspection struct {
	CardID    string   `json:"card_id"`
	CardTitle string   `json:"card_title"`
	SQLQuery  string   `json:"sql_query"`
	Columns   []Column `json:"columns"`
}

type Column struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// Client inspects cards on the BI platform via its REST API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

type rawCard struct {
	Name         string `json:"name"`
	DatasetQuery struct {
		Native *struct {
			Query string `json:"query"`
		} `json:"native"`
	} `json:"dataset_query"`
	ResultMetadata []struct {
		Name     string `json:"name"`
		BaseType string `json:"base_type"`
	} `json:"result_metadata"`
}

// Inspect fetches card metadata and extracts title, native SQL and
// columns, applying named defaults where the card has none.
func (c *Client) Inspect(ctx context.Context, cardID string) (Inspection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/card/"+cardID+"?ignore_view=true", nil)
	if err != nil {
		return Inspection{}, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Inspection{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Inspection{}, fmt.Errorf("cards API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var card rawCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return Inspection{}, err
	}

	out := Inspection{CardID: cardID, CardTitle: card.Name, Columns: []Column{}}
	if out.CardTitle == "" {
		out.CardTitle = "Unknown"
	}
	switch {
	case card.DatasetQuery.Native == nil:
		out.SQLQuery = "No native SQL query found in dataset_query"
	case card.DatasetQuery.Native.Query == "":
		out.SQLQuery = "No 'query' field found in native dataset_query"
	default:
		out.SQLQuery = card.DatasetQuery.Native.Query
	}
	for i, col := range card.ResultMetadata {
		name := col.Name
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		typ := col.BaseType
		if typ == "" {
			typ = "Unknown"
		}
		out.Columns = append(out.Columns, Column{Index: i + 1, Name: name, Type: typ})
	}
	return out, nil
}
