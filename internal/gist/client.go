// Package gist backs up and restores the task collections through the
// GitHub Gist API. One gist file holds the JSON-serialized {tasks, logs}
// pair; the gist id is the only handle a user needs to carry between
// machines.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mei/taskflow/internal/model"
)

// DefaultBaseURL is the GitHub API root
const DefaultBaseURL = "https://api.github.com"

// ErrBadFormat reports remote content that is not a taskflow backup
var ErrBadFormat = errors.New("gist: backup content is missing tasks or logs")

// Backup is the serialized payload stored in the gist file
type Backup struct {
	Tasks []model.Task    `json:"tasks"`
	Logs  []model.TaskLog `json:"logs"`
}

// FileName returns the per-user backup file name inside the gist
func FileName(username string) string {
	return fmt.Sprintf("taskflow_%s_data.json", username)
}

// legacyFileName is the fallback used by older backups without a username
const legacyFileName = "taskflow_data.json"

// Client talks to the gist API with a personal access token
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the public GitHub API
func NewClient(token string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom API root
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

type gistFile struct {
	Content string `json:"content"`
}

type gistPayload struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Upload serializes the collections into the user's backup file and
// creates a new private gist, or updates gistID when it is known. It
// returns the id of the created or updated gist.
func (c *Client) Upload(ctx context.Context, gistID, username string, tasks []model.Task, logs []model.TaskLog) (string, error) {
	content, err := json.MarshalIndent(Backup{Tasks: tasks, Logs: logs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("gist: encode backup: %w", err)
	}

	payload := gistPayload{
		Description: fmt.Sprintf("TaskFlow data backup (%s)", username),
		Public:      false,
		Files: map[string]gistFile{
			FileName(username): {Content: string(content)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gist: encode payload: %w", err)
	}

	method := http.MethodPost
	url := c.baseURL + "/gists"
	if gistID != "" {
		method = http.MethodPatch
		url += "/" + gistID
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gist: sync failed: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gist: sync failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gist: sync failed: %s", resp.Status)
	}

	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gist: sync failed: %w", err)
	}
	if out.ID == "" {
		out.ID = gistID
	}
	return out.ID, nil
}

// Download fetches the gist, picks the user's backup file (falling back to
// the legacy unnamed file) and decodes it. Content whose JSON lacks either
// a tasks or a logs field is rejected with ErrBadFormat and nothing is
// applied.
func (c *Client) Download(ctx context.Context, gistID, username string) (*Backup, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/gists/"+gistID, nil)
	if err != nil {
		return nil, fmt.Errorf("gist: load failed: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gist: load failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gist: load failed: %s", resp.Status)
	}

	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gist: load failed: %w", err)
	}

	file, ok := out.Files[FileName(username)]
	if !ok {
		file, ok = out.Files[legacyFileName]
	}
	if !ok {
		return nil, fmt.Errorf("gist: load failed: backup file not found")
	}

	return ParseBackup([]byte(file.Content))
}

// ParseBackup decodes backup content and enforces that both collections
// are present.
func ParseBackup(content []byte) (*Backup, error) {
	var probe struct {
		Tasks *[]model.Task    `json:"tasks"`
		Logs  *[]model.TaskLog `json:"logs"`
	}
	if err := json.Unmarshal(content, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if probe.Tasks == nil || probe.Logs == nil {
		return nil, ErrBadFormat
	}
	return &Backup{Tasks: *probe.Tasks, Logs: *probe.Logs}, nil
}
