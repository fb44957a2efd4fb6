package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/quizdrill/internal/store"
)

// RequestRecord is one logged LLM request.
type RequestRecord struct {
	Timestamp    string  `json:"timestamp"`
	Model        string  `json:"model"`
	Purpose      string  `json:"purpose"`
	LatencyMs    int64   `json:"latencyMs"`
	Success      bool    `json:"success"`
	InputTokens  int     `json:"inputTokens,omitempty"`
	OutputTokens int     `json:"outputTokens,omitempty"`
	CostUSD      float64 `json:"costUsd,omitempty"`
	ErrorMessage string  `json:"error,omitempty"`
	RequestBody  string  `json:"requestBody,omitempty"`
	ResponseBody string  `json:"responseBody,omitempty"`
}

// RequestLog records LLM requests for inspection via the llm command.
type RequestLog interface {
	Append(ctx context.Context, rec RequestRecord) error
	Recent(ctx context.Context, n int) ([]RequestRecord, error)
}

const requestLogKey = "llmRequestLog"

// maxLogEntries caps the stored log so it never grows unbounded.
const maxLogEntries = 200

// KVRequestLog persists request records as a capped list in the KV store.
type KVRequestLog struct {
	kv store.KV
}

// NewKVRequestLog creates a RequestLog backed by the given KV store.
func NewKVRequestLog(kv store.KV) *KVRequestLog {
	return &KVRequestLog{kv: kv}
}

func (l *KVRequestLog) Append(ctx context.Context, rec RequestRecord) error {
	var records []RequestRecord
	if _, err := store.GetJSON(ctx, l.kv, requestLogKey, &records); err != nil {
		return err
	}
	records = append(records, rec)
	if len(records) > maxLogEntries {
		records = records[len(records)-maxLogEntries:]
	}
	return l.kv.Set(ctx, requestLogKey, records)
}

func (l *KVRequestLog) Recent(ctx context.Context, n int) ([]RequestRecord, error) {
	var records []RequestRecord
	if _, err := store.GetJSON(ctx, l.kv, requestLogKey, &records); err != nil {
		return nil, err
	}
	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// LoggingProvider is a decorator that records every LLM request.
type LoggingProvider struct {
	inner Provider
	log   RequestLog
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log RequestLog) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := RequestRecord{
		Timestamp:   start.UTC().Format(time.RFC3339),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
		rec.ResponseBody = string(resp.Content)
		if c := LookupCost(resp.Model); c != nil {
			rec.CostUSD = c.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		}
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Log the record but don't fail the request if logging fails.
	if logErr := l.log.Append(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
