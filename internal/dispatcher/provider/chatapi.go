package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
)

// SentinelErrorMessage replaces a missing error text when Chat API
// reports a failure without saying why. The caller must never see a null
// error on failure; the real payload goes to the logs.
const SentinelErrorMessage = "Error! Details in the microservice's logs. Must fix"

// DispatchEventSubject carries one event per completed provider call.
const DispatchEventSubject = "dispatcher.messages.dispatched"

// Payload fields longer than this are cut before logging so base-64
// blobs do not flood the logs.
const logValueLimit = 25

// ChatAPIProvider talks to the Chat API HTTP endpoint
// {base}/{instance}/{action}?token={token}.
type ChatAPIProvider struct {
	logger     *slog.Logger
	httpClient *http.Client
	validate   *validator.Validate
	apiURL     string
	events     EventPublisher
}

// NewChatAPIProvider builds a provider. The base URL may arrive
// percent-encoded from the environment and is unescaped here, matching
// what Chat API expects. A nil httpClient gets a 10s-timeout default;
// events may be nil to disable the dispatch feed.
func NewChatAPIProvider(logger *slog.Logger, apiURL string, validate *validator.Validate, httpClient *http.Client, events EventPublisher) (*ChatAPIProvider, error) {
	unescaped, err := url.QueryUnescape(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Chat API base URL %q: %w", apiURL, err)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &ChatAPIProvider{
		logger:     logger.With("provider", "chatapi"),
		httpClient: httpClient,
		validate:   validate,
		apiURL:     unescaped,
		events:     events,
	}, nil
}

// rawReply is the loosely typed Chat API response; any subset of these
// keys may be present, including none.
type rawReply struct {
	Sent    bool   `json:"sent"`
	ID      string `json:"id"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Send maps the message onto a Chat API request shape, posts it, and
// normalizes the reply. A connect timeout surfaces as
// domain.ErrConnectionTimeout; any other transport or decode failure is
// returned as-is for the transport layer to treat as internal.
func (p *ChatAPIProvider) Send(ctx context.Context, msg *domain.Message) (*domain.Response, error) {
	req := BuildRequest(msg)
	action := req.Action()

	// A message that passed domain validation always passes this check;
	// a failure here means the two validation layers disagree.
	if err := p.validate.StructCtx(ctx, req); err != nil {
		p.logger.ErrorContext(ctx, "request failed shape re-validation",
			"action", action, "error", err)
		return nil, fmt.Errorf("chat api %s request failed re-validation: %w", action, err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", action, err)
	}

	p.logger.InfoContext(ctx, "sending message",
		"action", action,
		"phone", msg.Phone,
		"payload", shortenPayload(body))

	endpoint := fmt.Sprintf("%s/%s/%s?token=%s", p.apiURL, msg.Instance, action, msg.Token)

	timer := prometheus.NewTimer(providerRequestDurationHist.WithLabelValues(action))
	resp, err := p.post(ctx, endpoint, body)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	normalized := p.normalize(ctx, resp)

	p.logger.InfoContext(ctx, "normalized response from Chat API",
		"action", action,
		"success", normalized.Success,
		"id", normalized.ID,
		"error_message", normalized.ErrorMessage)

	p.publishEvent(ctx, msg, action, normalized)

	return normalized, nil
}

func (p *ChatAPIProvider) post(ctx context.Context, endpoint string, body []byte) (*rawReplyWithRaw, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create Chat API request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if isConnectTimeout(err) {
			return nil, domain.ErrConnectionTimeout
		}
		return nil, fmt.Errorf("failed to send request to Chat API: %w", err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Chat API response: %w", err)
	}

	var reply rawReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("failed to decode Chat API response %q: %w", string(raw), err)
	}

	p.logger.InfoContext(ctx, "response got from Chat API", "body", string(raw))

	return &rawReplyWithRaw{reply: reply, raw: raw}, nil
}

type rawReplyWithRaw struct {
	reply rawReply
	raw   []byte
}

// isConnectTimeout reports whether the request died while establishing
// the TCP connection. Timeouts later in the exchange are ordinary
// transport failures and stay internal.
func isConnectTimeout(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout()
}

// normalize flattens the raw reply into the outward response. The error
// text falls back from "error" to "message"; success forces it to null;
// a failure with no text at all is a provider contract violation that is
// logged and masked behind the sentinel.
func (p *ChatAPIProvider) normalize(ctx context.Context, resp *rawReplyWithRaw) *domain.Response {
	normalized := &domain.Response{Success: resp.reply.Sent}

	if resp.reply.ID != "" {
		id := resp.reply.ID
		normalized.ID = &id
	}

	errorMessage := resp.reply.Error
	if errorMessage == "" {
		errorMessage = resp.reply.Message
	}
	if !normalized.Success && errorMessage != "" {
		normalized.ErrorMessage = &errorMessage
	}

	if !normalized.Success && normalized.ErrorMessage == nil {
		p.logger.ErrorContext(ctx, "Chat API reported failure without error text, contact the developers",
			"body", string(resp.raw))
		sentinel := SentinelErrorMessage
		normalized.ErrorMessage = &sentinel
	}

	return normalized
}

func (p *ChatAPIProvider) publishEvent(ctx context.Context, msg *domain.Message, action string, normalized *domain.Response) {
	if p.events == nil {
		return
	}

	event := struct {
		EventID string  `json:"event_id"`
		Action  string  `json:"action"`
		Phone   string  `json:"phone"`
		Success bool    `json:"success"`
		ID      *string `json:"id,omitempty"`
	}{
		EventID: uuid.NewString(),
		Action:  action,
		Phone:   msg.Phone,
		Success: normalized.Success,
		ID:      normalized.ID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WarnContext(ctx, "failed to marshal dispatch event", "error", err)
		return
	}

	if err := p.events.Publish(ctx, DispatchEventSubject, data); err != nil {
		p.logger.WarnContext(ctx, "failed to publish dispatch event", "error", err)
	}
}

// shortenPayload re-renders a marshaled request with its long values cut
// to logValueLimit characters plus a [...] marker.
func shortenPayload(body []byte) string {
	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}

	for key, value := range fields {
		if len(value) > logValueLimit {
			fields[key] = value[:logValueLimit] + "[...]"
		}
	}

	shortened, err := json.Marshal(fields)
	if err != nil {
		return string(body)
	}
	return string(shortened)
}
