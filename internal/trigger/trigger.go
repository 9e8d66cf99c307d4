// Package trigger loads the workflow event that invoked the step. The
// payload comes from the JSON file at GITHUB_EVENT_PATH and the rest of
// the context from the standard runner environment variables. The
// loaded context is passed around explicitly so nothing downstream
// reads process-wide state.
package trigger

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Context mirrors the workflow run context exposed to user scripts as
// the `context` binding.
type Context struct {
	EventName  string
	SHA        string
	Ref        string
	Workflow   string
	Action     string
	Actor      string
	Job        string
	Repository string
	RunID      int64
	RunNumber  int64
	Payload    map[string]any
}

// Load reads the trigger context from the runner environment. A
// missing GITHUB_EVENT_PATH yields an empty payload rather than an
// error so the binary stays usable outside a workflow run.
func Load() (*Context, error) {
	c := &Context{
		EventName:  os.Getenv("GITHUB_EVENT_NAME"),
		SHA:        os.Getenv("GITHUB_SHA"),
		Ref:        os.Getenv("GITHUB_REF"),
		Workflow:   os.Getenv("GITHUB_WORKFLOW"),
		Action:     os.Getenv("GITHUB_ACTION"),
		Actor:      os.Getenv("GITHUB_ACTOR"),
		Job:        os.Getenv("GITHUB_JOB"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		RunID:      envInt64("GITHUB_RUN_ID"),
		RunNumber:  envInt64("GITHUB_RUN_NUMBER"),
		Payload:    map[string]any{},
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.Payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}

	return c, nil
}

// ContentID returns the node id of the issue or pull request that
// triggered the event, preferring the issue payload. Empty when the
// event carries neither.
func (c *Context) ContentID() string {
	for _, key := range []string{"issue", "pull_request"} {
		if sub, ok := c.Payload[key].(map[string]any); ok {
			if id, ok := sub["node_id"].(string); ok {
				return id
			}
		}
	}
	return ""
}

// Bindings returns the context in the map form user scripts see.
func (c *Context) Bindings() map[string]any {
	return map[string]any{
		"eventName":  c.EventName,
		"sha":        c.SHA,
		"ref":        c.Ref,
		"workflow":   c.Workflow,
		"action":     c.Action,
		"actor":      c.Actor,
		"job":        c.Job,
		"repository": c.Repository,
		"runId":      c.RunID,
		"runNumber":  c.RunNumber,
		"payload":    c.Payload,
	}
}

func envInt64(key string) int64 {
	n, _ := strconv.ParseInt(os.Getenv(key), 10, 64)
	return n
}
