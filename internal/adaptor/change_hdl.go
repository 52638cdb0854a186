package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"picturetime-dashboard/internal/usecase"
	"picturetime-dashboard/pkg/utils"

	"go.uber.org/zap"
)

const keepAliveInterval = 25 * time.Second

type ChangeHandler struct {
	service usecase.ChangeService
	log     *zap.Logger
}

func NewChangeHandler(service usecase.ChangeService, log *zap.Logger) *ChangeHandler {
	return &ChangeHandler{
		service: service,
		log:     log.With(zap.String("handler", "changes")),
	}
}

// Stream handles GET /api/<collection>/changes as server-sent events. Each
// event is one document write; list views refetch on it.
func (h *ChangeHandler) Stream(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			utils.ResponseInternalError(w, "Streaming unsupported")
			return
		}

		changes, err := h.service.Subscribe(r.Context(), collection)
		if err != nil {
			handleServiceError(w, h.log, err, "subscribe "+collection)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		h.log.Debug("Change stream opened", zap.String("collection", collection))
		defer h.log.Debug("Change stream closed", zap.String("collection", collection))

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			case change, open := <-changes:
				if !open {
					return
				}
				data, err := json.Marshal(change)
				if err != nil {
					h.log.Warn("Failed to encode change", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", change.Op, data)
				flusher.Flush()
			}
		}
	}
}
