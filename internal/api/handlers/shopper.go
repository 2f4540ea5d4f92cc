package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront-service/internal/models"
	"storefront-service/internal/notify"
)

const (
	HeaderUserEmail        = "X-User-Email"
	HeaderUserEmailAddress = "X-User-Email-Address"
	HeaderUserFirstName    = "X-User-First-Name"
	HeaderUserName         = "X-User-Name"

	// HeaderNotifications carries the request's notifications as a JSON
	// array of {"level", "message"} objects.
	HeaderNotifications = "X-Notifications"
)

type shopperKey struct{}

// Shopper resolves the gateway's identity headers once per request and
// attaches a notification collector.
func Shopper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := models.NewShopper(
			r.Header.Get(HeaderUserFirstName),
			r.Header.Get(HeaderUserName),
			r.Header.Get(HeaderUserEmailAddress),
			r.Header.Get(HeaderUserEmail),
		)
		ctx := context.WithValue(r.Context(), shopperKey{}, s)
		ctx, collector := notify.WithCollector(ctx)
		next.ServeHTTP(&notifyingWriter{ResponseWriter: w, collector: collector}, r.WithContext(ctx))
	})
}

// notifyingWriter copies the collected notifications into
// HeaderNotifications when the status line is written.
type notifyingWriter struct {
	http.ResponseWriter
	collector   *notify.Collector
	wroteHeader bool
}

func (w *notifyingWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if all := w.collector.All(); len(all) > 0 {
			if b, err := json.Marshal(all); err == nil {
				w.Header().Set(HeaderNotifications, string(b))
			}
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *notifyingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *notifyingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func ShopperFrom(ctx context.Context) models.Shopper {
	s, _ := ctx.Value(shopperKey{}).(models.Shopper)
	return s
}

// requireShopper answers 401 for anonymous requests.
func requireShopper(w http.ResponseWriter, r *http.Request) (models.Shopper, bool) {
	s := ShopperFrom(r.Context())
	if s.Anonymous() {
		writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required", nil)
		return s, false
	}
	return s, true
}
