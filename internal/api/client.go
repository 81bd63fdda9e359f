// Package api implements the HTTP client for the Trackr backend. All business
// computation (balances, summaries, persistence) happens on the remote side;
// this client only moves authenticated JSON requests back and forth.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"trackr/internal/core"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of an error response is read for the detail
// message.
const maxErrorBody = 64 * 1024

type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8000/api/v1.0"). A nil httpc gets a default client;
// timeout semantics are owned by the transport, not by callers.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// kindPath maps a kind to its sub-resource path.
func kindPath(kind core.Kind) string {
	if kind == core.Income {
		return "/incomes/"
	}
	return "/expenses/"
}

// do issues one request and returns the response body. Requests with a
// non-empty token carry it as a bearer credential. Responses with status >=
// 400 become *Error with the best-effort detail message extracted.
func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req, token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Detail: extractDetail(resp.Body)}
		slog.WarnContext(ctx, "API request failed",
			"method", method, "path", path, "status", resp.StatusCode)
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func (c *Client) setCommonHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// extractDetail pulls the structured message out of an error body. Falls back
// to the raw text for non-JSON responses, or empty when there is nothing
// usable.
func extractDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

// decodeList accepts both a bare JSON array and the paginated
// {"results": [...]} envelope.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var envelope struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return envelope.Results, nil
}

// GetSummary fetches the per-timeframe totals.
func (c *Client) GetSummary(ctx context.Context, token string) (core.SummaryTable, error) {
	data, err := c.do(ctx, http.MethodGet, "/summary/", token, nil)
	if err != nil {
		return nil, err
	}
	var table core.SummaryTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return table, nil
}

// ListTransactions fetches all records of one kind and tags them with it.
func (c *Client) ListTransactions(ctx context.Context, token string, kind core.Kind) ([]core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	data, err := c.do(ctx, http.MethodGet, kindPath(kind), token, nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[core.Transaction](data)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Kind = kind
	}
	return items, nil
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]core.Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/categories/", token, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[core.Category](data)
}

func (c *Client) CreateCategory(ctx context.Context, token, name string, kind core.Kind) (core.Category, error) {
	if err := kind.Validate(); err != nil {
		return core.Category{}, err
	}
	body := map[string]string{"name": name, "type": string(kind)}
	data, err := c.do(ctx, http.MethodPost, "/categories/", token, body)
	if err != nil {
		return core.Category{}, err
	}
	var created core.Category
	if err := json.Unmarshal(data, &created); err != nil {
		return core.Category{}, fmt.Errorf("decode category: %w", err)
	}
	return created, nil
}

// TransactionPayload is the outbound shape for creates and partial updates.
// Date is a preformatted string so edit submissions pass the form value
// through verbatim.
type TransactionPayload struct {
	Amount      core.Amount `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Category    core.ID     `json:"category"`
	Type        core.Kind   `json:"type"`
}

func (c *Client) CreateTransaction(ctx context.Context, token string, kind core.Kind, payload TransactionPayload) (core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, err
	}
	data, err := c.do(ctx, http.MethodPost, kindPath(kind), token, payload)
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeTransaction(data, kind)
}

func (c *Client) UpdateTransaction(ctx context.Context, token string, kind core.Kind, id core.ID, payload TransactionPayload) (core.Transaction, error) {
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, err
	}
	data, err := c.do(ctx, http.MethodPatch, kindPath(kind)+string(id)+"/", token, payload)
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeTransaction(data, kind)
}

func (c *Client) DeleteTransaction(ctx context.Context, token string, kind core.Kind, id core.ID) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, kindPath(kind)+string(id)+"/", token, nil)
	return err
}

func decodeTransaction(data []byte, kind core.Kind) (core.Transaction, error) {
	var tx core.Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("decode transaction: %w", err)
	}
	tx.Kind = kind
	return tx, nil
}

// LoginResponse is the token grant returned by /login/. User is optional;
// older backend versions return only the access token.
type LoginResponse struct {
	Access string     `json:"access"`
	User   *core.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	body := map[string]string{"username": username, "password": password}
	data, err := c.do(ctx, http.MethodPost, "/login/", "", body)
	if err != nil {
		return LoginResponse{}, err
	}
	var res LoginResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	return res, nil
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/signup/", "", req)
	return err
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context, token string) (core.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/users/me/", token, nil)
	if err != nil {
		return core.User{}, err
	}
	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		return core.User{}, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}

// UploadProfilePicture sends the image as multipart form data and returns the
// stored picture URL.
func (c *Client) UploadProfilePicture(ctx context.Context, token, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile_pic", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("copy picture data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/profile/update/", &buf)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setCommonHeaders(req, token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &Error{Status: resp.StatusCode, Detail: extractDetail(resp.Body)}
	}

	var payload struct {
		ProfilePic string `json:"profile_pic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return payload.ProfilePic, nil
}
