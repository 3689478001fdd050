package publishers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-resty/resty/v2"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
)

type httpPublisher struct {
	id       string
	method   string
	url      string
	headers  map[string]string
	encoding string
	client   *resty.Client
	log      logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	encoding := cfg.HTTP.Encoding
	if encoding == "" {
		encoding = EncodingJSON
	}

	return &httpPublisher{
		id:       cfg.ID,
		method:   cfg.HTTP.Method,
		url:      cfg.HTTP.URL,
		headers:  cfg.HTTP.Headers,
		encoding: encoding,
		client:   httpclient.NewRestyHTTPClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second),
		log:      logger.Ensure(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	body, contentType, err := encodeEvent(evt, h.encoding)
	if err != nil {
		return err
	}

	req := h.client.R().
		SetContext(ctx).
		SetBody(body)

	if len(h.headers) > 0 {
		req.SetHeaders(h.headers)
	}
	req.SetHeader("Content-Type", contentType)

	method := h.method
	if method == "" {
		method = httpDefaultMethod
	}
	resp, err := req.Execute(method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	h.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"publisher_id": h.id,
		"collection":   evt.Collection,
		"record_id":    evt.RecordID,
	})
	return nil
}

// encodeEvent serializes evt and returns the matching content type.
func encodeEvent(evt Event, encoding string) ([]byte, string, error) {
	switch encoding {
	case EncodingCBOR:
		b, err := cbor.Marshal(evt)
		if err != nil {
			return nil, "", fmt.Errorf("marshal cbor event: %w", err)
		}
		return b, "application/cbor", nil
	case EncodingJSON, "":
		b, err := json.Marshal(evt)
		if err != nil {
			return nil, "", fmt.Errorf("marshal event: %w", err)
		}
		return b, "application/json", nil
	default:
		return nil, "", fmt.Errorf("unsupported event encoding %q", encoding)
	}
}

func readBodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
