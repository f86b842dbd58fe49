package boxcar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const urlPattern = "%s/devices/providers/%s/notifications/%s"

const (
	fieldToken     = "token"
	fieldSecret    = "secret"
	fieldEmail     = "email"
	fieldMessage   = "notification[message]"
	fieldFromName  = "notification[from_screen_name]"
	fieldID        = "notification[from_remote_service_id]"
	fieldSourceURL = "notification[source_url]"
	fieldIconURL   = "notification[icon_url]"
)

type operation int

const (
	operationSubscribe operation = iota
	operationCreate
	operationBroadcast
)

var operationName = map[operation]string{
	operationSubscribe: "subscribe",
	operationCreate:    "notify",
	operationBroadcast: "broadcast",
}

func (o operation) String() string {
	return operationName[o]
}

func (o operation) suffix() string {
	switch o {
	case operationSubscribe:
		return "subscribe"
	case operationBroadcast:
		return "broadcast"
	default:
		return ""
	}
}

type request struct {
	email   string
	message string
	options NotificationOptions
}

type field struct {
	key   string
	value string
}

// form keeps fields in insertion order; url.Values would sort them.
type form []field

func (f *form) add(key, value string) {
	*f = append(*f, field{key: key, value: value})
}

func (f *form) addIfSet(key, value string) {
	if value != "" {
		f.add(key, value)
	}
}

func (f form) keys() []string {
	keys := make([]string, 0, len(f))
	for _, kv := range f {
		keys = append(keys, kv.key)
	}
	return keys
}

func (f form) encode() string {
	var sb strings.Builder
	for i, kv := range f {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.value))
	}
	return sb.String()
}

func (c *Client) endpoint(op operation) string {
	return fmt.Sprintf(urlPattern, c.baseURL, url.PathEscape(c.apiKey), op.suffix())
}

func (c *Client) buildForm(req request) form {
	f := form{}
	f.add(fieldToken, c.apiKey)
	f.add(fieldSecret, c.apiSecret)
	f.addIfSet(fieldEmail, req.email)
	f.addIfSet(fieldMessage, req.message)
	f.addIfSet(fieldFromName, req.options.FromName)
	f.addIfSet(fieldID, req.options.ID)
	f.addIfSet(fieldSourceURL, req.options.SourceURL)
	f.addIfSet(fieldIconURL, req.options.IconURL)

	return f
}

func (c *Client) makeRequest(ctx context.Context, op operation, req request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = unknownError(fmt.Errorf("%v", r))
		}
		c.logResult(op, result)
	}()

	u := c.endpoint(op)
	f := c.buildForm(req)

	c.logger.Debug("sending boxcar request",
		zap.Stringer("operation", op),
		zap.String("base_url", c.baseURL),
		zap.Strings("fields", f.keys()),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(f.encode()))
	if err != nil {
		return unknownError(err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpclient.Do(httpReq)
	if err != nil {
		return unknownError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return statusFailure(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return unknownError(err)
	}

	return success(strings.ToValidUTF8(string(body), "\uFFFD"))
}

func (c *Client) logResult(op operation, result Result) {
	if result.Success {
		c.logger.Debug("boxcar request succeeded", zap.Stringer("operation", op))
		return
	}
	c.logger.Warn("boxcar request failed",
		zap.Stringer("operation", op),
		zap.Int("code", result.Code),
		zap.String("description", result.Description),
	)
}

// causeMessage strips the method and URL that *url.Error prepends, which would
// otherwise leak the API key into the description.
func causeMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
