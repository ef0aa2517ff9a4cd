package smsx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFast2SMSEndpoint is the bulk v2 route.
const DefaultFast2SMSEndpoint = "https://www.fast2sms.com/dev/bulkV2"

// Fast2SMS sends one request per alert carrying every recipient; the
// gateway fans out on its side.
type Fast2SMS struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewFast2SMS returns a gateway client. An empty endpoint selects the
// public bulk route; a nil client gets a 10 second timeout.
func NewFast2SMS(apiKey, endpoint string, client *http.Client) (*Fast2SMS, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("smsx: fast2sms api key is required")
	}
	if endpoint == "" {
		endpoint = DefaultFast2SMSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Fast2SMS{apiKey: apiKey, endpoint: endpoint, client: client}, nil
}

func (*Fast2SMS) Name() string { return "fast2sms" }

func (f *Fast2SMS) Send(ctx context.Context, to, body string) (Receipt, error) {
	return f.SendBatch(ctx, []string{to}, body)
}

type fast2smsRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return     bool            `json:"return"`
	RequestID  string          `json:"request_id"`
	StatusCode int             `json:"status_code"`
	Message    json.RawMessage `json:"message"`
}

// detail flattens the gateway's message field, which is a list on
// success and a plain string on failure.
func (r fast2smsResponse) detail() string {
	var list []string
	if err := json.Unmarshal(r.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	var s string
	if err := json.Unmarshal(r.Message, &s); err == nil {
		return s
	}
	return string(r.Message)
}

// SendBatch submits all recipients in a single request.
func (f *Fast2SMS) SendBatch(ctx context.Context, to []string, body string) (Receipt, error) {
	if len(to) == 0 {
		return Receipt{}, errors.New("smsx: no recipients")
	}

	payload, err := json.Marshal(fast2smsRequest{
		Route:    "q",
		Message:  body,
		Language: "english",
		Numbers:  strings.Join(to, ","),
	})
	if err != nil {
		return Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("fast2sms: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Receipt{}, fmt.Errorf("fast2sms: read response: %w", err)
	}

	var out fast2smsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Receipt{}, &ProviderError{Provider: f.Name(), StatusCode: resp.StatusCode, Message: "unreadable response"}
	}

	if resp.StatusCode >= 300 || !out.Return {
		code := out.StatusCode
		if code == 0 {
			code = resp.StatusCode
		}
		return Receipt{}, &ProviderError{Provider: f.Name(), StatusCode: code, Message: out.detail()}
	}

	return Receipt{Provider: f.Name(), MessageID: out.RequestID, Status: StatusQueued}, nil
}
