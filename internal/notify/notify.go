package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"paybyrd-bridge/internal/logger"
	"paybyrd-bridge/internal/transport"

	"go.uber.org/zap"
)

type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Error   Kind = "error"
)

// Notifier surfaces a message to whoever is looking at the current request:
// the shopper on the return path, the operator on the admin routes.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

const FlashCookie = "flash"

// FlashNotifier logs every notice and, when the context carries an HTTP
// exchange, appends it to the flash cookie of the pending response so the
// storefront can render it after the redirect.
type FlashNotifier struct {
	Path string
}

func NewFlashNotifier() *FlashNotifier {
	return &FlashNotifier{Path: "/"}
}

func (n *FlashNotifier) Notify(ctx context.Context, kind Kind, message string) {
	log := logger.FromCtx(ctx)
	switch kind {
	case Error:
		log.Warn("notify", zap.String("kind", string(kind)), zap.String("message", message))
	default:
		log.Info("notify", zap.String("kind", string(kind)), zap.String("message", message))
	}

	w := transport.GetResponseWriter(ctx)
	if w == nil {
		return
	}

	flashes, others := pendingFlashes(w.Header())
	flashes = append(flashes, Flash{Kind: kind, Message: message})

	value, err := encode(flashes)
	if err != nil {
		log.Warn("failed to encode flash cookie", zap.Error(err))
		return
	}

	w.Header()["Set-Cookie"] = others
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    value,
		Path:     n.Path,
		SameSite: http.SameSiteLaxMode,
	})
}

// pendingFlashes splits already-queued Set-Cookie headers into the flashes
// written earlier in this request and every unrelated cookie.
func pendingFlashes(h http.Header) ([]Flash, []string) {
	var flashes []Flash
	var others []string

	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, FlashCookie+"=") {
			others = append(others, v)
			continue
		}
		c, err := http.ParseSetCookie(v)
		if err != nil {
			continue
		}
		if decoded, err := decode(c.Value); err == nil {
			flashes = append(flashes, decoded...)
		}
	}
	return flashes, others
}

// Flashes reads the flash cookie sent back by the browser.
func Flashes(r *http.Request) []Flash {
	c, err := r.Cookie(FlashCookie)
	if err != nil {
		return nil
	}
	flashes, err := decode(c.Value)
	if err != nil {
		return nil
	}
	return flashes
}

func encode(flashes []Flash) (string, error) {
	raw, err := json.Marshal(flashes)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decode(value string) ([]Flash, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil, err
	}
	return flashes, nil
}
