package dietapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// Client talks to the diary backend REST API. Every request carries the
// shared X-API-Key header; per-user scoping happens via the userid
// parameter, which callers pass explicitly.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a Client for the given base URL (including the /api prefix).
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "dietapi"),
	}
}

// Login authenticates the user and returns the owner id the backend
// assigned. The id is what the session layer persists.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var resp struct {
		Success bool       `json:"success"`
		Message string     `json:"message"`
		UserID  flexString `json:"userid"`
	}
	if err := c.postJSON(ctx, "/login", creds, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !resp.Success || resp.UserID == "" {
		return "", &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "login rejected")}
	}
	return string(resp.UserID), nil
}

// Register creates the account and, on success, logs the new user in so
// the caller immediately has an owner id.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var resp envelope
	if err := c.postJSON(ctx, "/signin", reg, &resp); err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if !resp.Success {
		return "", &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "registration rejected")}
	}
	return c.Login(ctx, Credentials{UserKey: reg.UserKey, Email: reg.Email, Password: reg.Password})
}

// HasProfile reports whether the owner has filled in the personal-info
// profile ("basedata"). Meal logging is gated on this.
func (c *Client) HasProfile(ctx context.Context, ownerID string) (bool, error) {
	rows, err := c.getRows(ctx, "basedata", ownerID, "")
	if err != nil {
		return false, fmt.Errorf("has profile: %w", err)
	}
	return len(rows) > 0, nil
}

// Profile returns the raw basedata rows for display purposes.
func (c *Client) Profile(ctx context.Context, ownerID string) ([]map[string]any, error) {
	rows, err := c.getRows(ctx, "basedata", ownerID, "")
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	out := make([]map[string]any, 0, len(rows))
	for _, raw := range rows {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("profile: decode row: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

// SubmitProfile creates or updates the personal-info profile.
func (c *Client) SubmitProfile(ctx context.Context, ownerID string, fields map[string]any) error {
	body := map[string]any{"userid": ownerID}
	for k, v := range fields {
		body[k] = v
	}
	var resp envelope
	if err := c.postJSON(ctx, "/insert/basedata", body, &resp); err != nil {
		return fmt.Errorf("submit profile: %w", err)
	}
	if !resp.Success {
		return &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "profile rejected")}
	}
	return nil
}

// MealsForDay fetches the owner's meal records for one calendar day
// (the backend filters by the date string, not by effective date;
// day bucketing stays in the domain layer).
func (c *Client) MealsForDay(ctx context.Context, ownerID string, day time.Time) ([]domain.MealRecord, error) {
	rows, err := c.getRows(ctx, "daily_d", ownerID, day.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("meals for day: %w", err)
	}

	records := make([]domain.MealRecord, 0, len(rows))
	for _, raw := range rows {
		var row mealRow
		if err := json.Unmarshal(raw, &row); err != nil {
			c.log.WarnContext(ctx, "skipping undecodable meal row", slog.String("error", err.Error()))
			continue
		}
		rec, ok := mapMealRow(ownerID, row)
		if !ok {
			c.log.WarnContext(ctx, "skipping meal row with unknown slot label", slog.String("label", row.DietTimeType))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// CreateMealRecord submits one manually logged meal with up to
// domain.MaxImageRefs photos as a multipart form. Resubmitting the same
// slot for the same day overwrites the earlier record server-side.
// Returns the backend-assigned media references for the uploaded photos.
func (c *Client) CreateMealRecord(ctx context.Context, rec domain.MealRecord, photos []domain.Photo) ([]string, error) {
	if len(photos) > domain.MaxImageRefs {
		return nil, domain.NewValidationError("photos", fmt.Sprintf("at most %d photos per meal", domain.MaxImageRefs))
	}

	content := rec.ContentItems
	if rec.Skipped {
		content = []string{skipContent}
	}
	payload := map[string]any{
		"userid":         rec.OwnerID,
		"diet_time":      rec.Timestamp.Format("2006-01-02 15:04:05"),
		"diet_time_type": WireLabel(rec.Slot),
		"diet_content":   content,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("create meal: marshal payload: %w", err)
	}

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	if err := w.WriteField("data", string(data)); err != nil {
		return nil, fmt.Errorf("create meal: write data field: %w", err)
	}
	for _, p := range photos {
		part, err := w.CreateFormFile("image", p.Name)
		if err != nil {
			return nil, fmt.Errorf("create meal: create image part: %w", err)
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, fmt.Errorf("create meal: write image part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("create meal: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/insert/daily_d", &form)
	if err != nil {
		return nil, fmt.Errorf("create meal: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-API-Key", c.apiKey)

	var resp struct {
		Success   bool     `json:"success"`
		Message   string   `json:"message"`
		NewImages []string `json:"newImages"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	if !resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "meal record rejected")}
	}
	return resp.NewImages, nil
}

// SaveDietEntry persists one voice-derived meal. Mutations are never
// retried here: the voice save loop's contract is one attempt per item.
func (c *Client) SaveDietEntry(ctx context.Context, entry domain.DietEntry) error {
	body := map[string]any{
		"user_id":        entry.OwnerID,
		"diet_time":      entry.Timestamp.Format("2006-01-02T15:04:05"),
		"diet_time_type": entry.SlotLabel,
		"content":        entry.Content,
	}
	if entry.ImageBase64 != "" {
		body["image_base64"] = entry.ImageBase64
	} else {
		body["image_base64"] = nil
	}

	var resp envelope
	if err := c.postJSON(ctx, "/save-diet", body, &resp); err != nil {
		return fmt.Errorf("save diet entry: %w", err)
	}
	if !resp.Success {
		return &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "diet entry rejected")}
	}
	return nil
}

// InitialCheck asks the backend which of the owner's data is still
// missing after login.
func (c *Client) InitialCheck(ctx context.Context, ownerID string) (json.RawMessage, error) {
	var resp envelope
	if err := c.getJSON(ctx, "/get/initial_check/"+url.PathEscape(ownerID), nil, &resp); err != nil {
		return nil, fmt.Errorf("initial check: %w", err)
	}
	if !resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "initial check failed")}
	}
	return resp.Data, nil
}

// GenerateReport asks the backend for the owner's generated report.
func (c *Client) GenerateReport(ctx context.Context, ownerID string) (json.RawMessage, error) {
	var resp envelope
	if err := c.getJSON(ctx, "/get/generate_report/"+url.PathEscape(ownerID), nil, &resp); err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	if !resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "report generation failed")}
	}
	return resp.Data, nil
}

// ---------------------------------------------------------------------------
// plumbing
// ---------------------------------------------------------------------------

// getRows fetches /get?tablename=...&userid=...[&date=...] and returns
// the raw data rows.
func (c *Client) getRows(ctx context.Context, table, ownerID, date string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("tablename", table)
	q.Set("userid", ownerID)
	if date != "" {
		q.Set("date", date)
	}

	var resp struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    []json.RawMessage `json:"data"`
	}
	if err := c.getJSON(ctx, "/get", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: orDefault(resp.Message, "query rejected")}
	}
	return resp.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	return c.doWithRetry(ctx, req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	// POSTs are mutations; no automatic retry.
	return c.do(req, out)
}

// doWithRetry executes a read request with a single retry on 5xx or
// network errors. Mutating requests go through do directly.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, out any) error {
	err := c.do(req, out)
	if err == nil || ctx.Err() != nil {
		return err
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return err
	}

	c.log.WarnContext(ctx, "retrying request", slog.String("url", req.URL.Path), slog.String("reason", err.Error()))
	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	return c.do(retry, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(body, &env) == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
