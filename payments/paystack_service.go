package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Paystack transaction API. Every call is bounded by the
// HTTP client's timeout; there are no retries.
type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type initializeRequest struct {
	Amount      int               `json:"amount"`
	Email       string            `json:"email"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Transaction is the data block Paystack returns for both initialize and
// verify calls; only the fields this service reads are declared.
type Transaction struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Status           string `json:"status"`
	Amount           int    `json:"amount"`
	Customer         struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type apiResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    Transaction `json:"data"`
}

// InitializeTransaction starts a charge for the given email. amount is in
// kobo. Metadata is echoed back by the gateway and carries the user id for
// correlation.
func (c *Client) InitializeTransaction(email string, amount int, callbackURL string, metadata map[string]string) (*Transaction, error) {
	body, err := json.Marshal(initializeRequest{
		Amount:      amount,
		Email:       email,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/transaction/initialize", c.BaseURL), bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.SecretKey))
	req.Header.Set("Content-Type", "application/json")

	data, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if data.AuthorizationURL == "" || data.Reference == "" {
		return nil, fmt.Errorf("gateway returned no authorization url or reference")
	}
	return data, nil
}

// VerifyTransaction fetches the gateway's view of a charge. A non-2xx
// response is an error; the caller decides what a non-"success" status means.
func (c *Client) VerifyTransaction(reference string) (*Transaction, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, reference), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.SecretKey))

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Transaction, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("api error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !parsed.Status {
		return nil, fmt.Errorf("gateway rejected request: %s", parsed.Message)
	}
	return &parsed.Data, nil
}
