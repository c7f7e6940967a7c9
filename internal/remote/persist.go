package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"docflow/internal"
)

type saveRequest struct {
	Data internal.RecordList `json:"data"`
}

type saveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type historyResponse struct {
	Records []internal.HistoryRecord `json:"records"`
}

// SaveRecords persists the record list. The list is always sent as an
// ordered array, never coerced to a single object.
func (c *Client) SaveRecords(ctx context.Context, records internal.RecordList) (string, error) {
	endpoint, err := c.endpoint("api/save")
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(saveRequest{Data: records})
	if err != nil {
		return "", fmt.Errorf("encode save request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Kind: KindConnectivity, Message: "could not reach the persistence service"}
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Kind: KindConnectivity, Message: "could not reach the persistence service"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := serverMessage(blob); msg != "" {
			return "", &Error{Kind: KindServer, Message: msg, Status: resp.StatusCode}
		}
		return "", &Error{Kind: KindStatus, Message: "could not save the records, try again", Status: resp.StatusCode}
	}

	var decoded saveResponse
	if err := json.Unmarshal(blob, &decoded); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	if !decoded.Success {
		msg := decoded.Error
		if msg == "" {
			msg = "could not save the records, try again"
		}
		return "", &Error{Kind: KindServer, Message: msg, Status: resp.StatusCode}
	}
	return decoded.Message, nil
}

// FetchHistory lists the persisted records. Callers treat a failure as an
// empty history rather than a hard error.
func (c *Client) FetchHistory(ctx context.Context) ([]internal.HistoryRecord, error) {
	endpoint, err := c.endpoint("api/history")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	decorate(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindConnectivity, Message: "could not reach the persistence service"}
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindConnectivity, Message: "could not reach the persistence service"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, blob, "history fetch failed")
	}

	var decoded historyResponse
	if err := json.Unmarshal(blob, &decoded); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return decoded.Records, nil
}
