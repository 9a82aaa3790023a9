// Package aps is the client for the Autodesk Platform Services
// collaborator: a two-legged OAuth token endpoint and the Design
// Automation workitem API. The referenced activity is pre-registered on
// APS; this client only submits workitems against it and reads status.
//
// Error taxonomy matters to callers: token rejection is an *AuthError,
// a non-2xx workitem response is an *APIError, and anything else (DNS,
// connection refused, ...) is a plain wrapped error treated as a
// connectivity failure.
package aps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/livecube/livecube/internal/config"
)

// API paths and parameters, per the APS v2 OAuth and Design Automation v3
// references.
const (
	tokenPath     = "/authentication/v2/token"
	workItemsPath = "/da/us-east/v3/workitems"
	scope         = "data:read data:write code:all"

	// resultURL is where the activity script uploads the exported STL.
	resultURL = "urn:adsk.objects:os.object:destination/result.stl"

	// PollInterval is the delay between workitem status checks in Wait.
	PollInterval = 4 * time.Second
)

// WorkItem statuses reported by Design Automation. The service owns this
// state machine; we only read it.
const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// AuthError indicates the token endpoint rejected the client credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "authentication failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// APIError indicates the Design Automation API returned a non-2xx
// response after authentication succeeded.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("design automation API error: status %d: %s", e.StatusCode, e.Body)
}

// WorkItem is the submission/status payload returned by the service.
type WorkItem struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ReportURL string `json:"reportUrl,omitempty"`
}

// Done reports whether the workitem has reached a terminal status.
func (w WorkItem) Done() bool {
	return w.Status == StatusSuccess || w.Status == StatusFailed
}

// Client talks to APS. Stateless across calls: a fresh token is fetched
// per operation, matching the one-token-per-tool-call behaviour of the
// original automation.
type Client struct {
	base       string
	activityID string
	cc         clientcredentials.Config
	http       *http.Client
}

// New builds a client from APS configuration. Credentials are not
// checked here; the first Token call surfaces any rejection.
func New(cfg config.APS) *Client {
	return &Client{
		base:       cfg.Base,
		activityID: cfg.ActivityID,
		cc: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.Base + tokenPath,
			Scopes:       []string{scope},
			// APS OAuth v2 expects client credentials in a Basic auth header.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		http: http.DefaultClient,
	}
}

// Token fetches a two-legged access token, good for 60 minutes. A
// rejection by the token endpoint becomes an *AuthError; transport
// failures pass through as connectivity errors.
func (c *Client) Token(ctx context.Context) (string, error) {
	tok, err := c.cc.Token(ctx)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return "", &AuthError{Err: err}
		}
		return "", fmt.Errorf("token endpoint: %w", err)
	}
	return tok.AccessToken, nil
}

// workItemRequest is the Design Automation submission body. The activity
// script inside Fusion reads edge_mm, creates the cube, and uploads the
// STL to the result URL.
type workItemRequest struct {
	ActivityID string         `json:"activityId"`
	Arguments  map[string]any `json:"arguments"`
}

// SubmitWorkItem launches a workitem for the pre-registered activity with
// the given edge length. It returns the service's acceptance (ID and
// initial status) without waiting for completion.
func (c *Client) SubmitWorkItem(ctx context.Context, edgeMM float64) (WorkItem, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return WorkItem{}, err
	}

	payload := workItemRequest{
		ActivityID: c.activityID,
		Arguments: map[string]any{
			"edge_mm": map[string]any{"value": edgeMM},
			"result":  map[string]any{"verb": "put", "url": resultURL},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return WorkItem{}, fmt.Errorf("encode workitem: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+workItemsPath, bytes.NewReader(body))
	if err != nil {
		return WorkItem{}, fmt.Errorf("build workitem request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var wi WorkItem
	if err := c.do(req, &wi); err != nil {
		return WorkItem{}, err
	}

	slog.Info("workitem submitted", "id", wi.ID, "status", wi.Status, "edge_mm", edgeMM)
	return wi, nil
}

// WorkItemStatus reads the current status of a workitem.
func (c *Client) WorkItemStatus(ctx context.Context, id string) (WorkItem, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return WorkItem{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+workItemsPath+"/"+id, nil)
	if err != nil {
		return WorkItem{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var wi WorkItem
	if err := c.do(req, &wi); err != nil {
		return WorkItem{}, err
	}
	return wi, nil
}

// Wait polls the workitem until it reaches a terminal status or the
// context is cancelled.
func (c *Client) Wait(ctx context.Context, id string) (WorkItem, error) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		wi, err := c.WorkItemStatus(ctx, id)
		if err != nil {
			return WorkItem{}, err
		}
		if wi.Done() {
			return wi, nil
		}

		select {
		case <-ctx.Done():
			return WorkItem{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// do executes the request and decodes a 2xx JSON body into out. A non-2xx
// response becomes an *APIError carrying the body for diagnosis.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("design automation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("design automation: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("design automation: decode response: %w", err)
	}
	return nil
}
