// Package aifill turns a free-text prompt into a partial quotation record
// via an OpenAI-compatible chat-completions endpoint.
package aifill

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"quotedesk/go_backend/internal/domain/quotation"
)

// Fill is the partial document the model may return. Pointer fields
// distinguish "absent" from "set to empty": absent fields leave the current
// document untouched on merge.
type Fill struct {
	RecipientName    *string    `json:"recipientName"`
	RecipientCompany *string    `json:"recipientCompany"`
	RecipientAddress *string    `json:"recipientAddress"`
	Subject          *string    `json:"subject"`
	Date             *string    `json:"date"`
	Items            []FillItem `json:"items"`
	Notes            *string    `json:"notes"`
	VATRate          *float64   `json:"vatRate"`
	TaxRate          *float64   `json:"taxRate"`
}

type FillItem struct {
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
}

// Apply merges the fill into doc field by field. Returned items replace the
// item list and get fresh IDs; a nil Items leaves the existing list alone.
func (f Fill) Apply(doc *quotation.Document) {
	if f.RecipientName != nil {
		doc.RecipientName = *f.RecipientName
	}
	if f.RecipientCompany != nil {
		doc.RecipientCompany = *f.RecipientCompany
	}
	if f.RecipientAddress != nil {
		doc.RecipientAddress = *f.RecipientAddress
	}
	if f.Subject != nil {
		doc.Subject = *f.Subject
	}
	if f.Date != nil {
		doc.Date = *f.Date
	}
	if f.Notes != nil {
		doc.Notes = *f.Notes
	}
	if f.VATRate != nil {
		doc.VATRate = *f.VATRate
	}
	if f.TaxRate != nil {
		doc.TaxRate = *f.TaxRate
	}
	if f.Items != nil {
		items := make([]quotation.Item, 0, len(f.Items))
		for _, it := range f.Items {
			items = append(items, quotation.Item{
				ID:          uuid.NewString(),
				Description: it.Description,
				Unit:        it.Unit,
				Quantity:    it.Quantity,
				UnitCost:    it.UnitCost,
			})
		}
		doc.Items = items
	}
}

type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
}

const systemPrompt = "You extract quotation fields from a user's request. " +
	"Answer strictly as JSON with no explanation. Allowed keys: recipientName, " +
	"recipientCompany, recipientAddress, subject, date, notes, vatRate, taxRate, " +
	"items (array of {description, unit, quantity, unitCost}). Omit every key " +
	"the request says nothing about. Quantities and costs are plain numbers. " +
	"Never invent prices the user did not state."

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_completion_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Fill asks the model for a partial quotation record. The call never touches
// a document; callers apply the result only on success.
func (c *Client) Fill(ctx context.Context, prompt string) (Fill, error) {
	payload := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      800,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Fill{}, err
	}

	urlStr := strings.TrimRight(c.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return Fill{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Fill{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Fill{}, fmt.Errorf("openai status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Fill{}, err
	}
	if len(out.Choices) == 0 {
		return Fill{}, errors.New("empty openai response")
	}

	content := stripCodeFences(out.Choices[0].Message.Content)
	var fill Fill
	if err := json.Unmarshal([]byte(content), &fill); err != nil {
		return Fill{}, fmt.Errorf("invalid fill json: %w", err)
	}
	return fill, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "json") {
		s = strings.TrimSpace(s[4:])
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
