package dailyevent

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxWebhookBody bounds the size of an inbound delivery.
const maxWebhookBody = 1 << 20

// WebhookHandlerFunc processes one authenticated delivery. Returning an
// error makes the handler answer 500 so the Partner API redelivers.
type WebhookHandlerFunc func(ctx context.Context, event *WebhookEvent[json.RawMessage]) error

// WebhookHandler returns an http.Handler that authenticates deliveries
// signed with secret and passes them to fn. It responds 405 to anything but
// POST, 413 to bodies over 1 MiB, 400 when the signature or envelope is
// invalid, 500 when fn fails and 200 otherwise.
func WebhookHandler(secret string, fn WebhookHandlerFunc, opts ...VerifyOption) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}

		event, err := ConstructWebhookEvent[json.RawMessage](payload, r.Header.Get(SignatureHeader), secret, opts...)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := fn(r.Context(), event); err != nil {
			http.Error(w, "handler failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
