package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mkadit/brcode"
	"github.com/mkadit/brcode/internal/config"
	"github.com/mkadit/brcode/render"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 14

// Handler serves payloads and QR images over HTTP.
type Handler struct {
	encoder  *brcode.Encoder
	renderer render.Renderer
	merchant config.Merchant
	log      *zap.Logger
}

func NewHandler(encoder *brcode.Encoder, renderer render.Renderer, merchant config.Merchant, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		encoder:  encoder,
		renderer: renderer,
		merchant: merchant,
		log:      log,
	}
}

// Router mounts the handler routes on a new chi router.
func (h *Handler) Router(allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Route("/v1/pix", func(r chi.Router) {
		r.Get("/payload", h.getPayload)
		r.Post("/payload", h.postPayload)
		r.Get("/qrcode.png", h.getQRCode)
	})
	return r
}

type payloadResponse struct {
	Payload string `json:"payload"`
	Static  bool   `json:"static"`
	QRSize  int    `json:"qr_size"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) getPayload(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondPayload(w, r, req)
}

func (h *Handler) postPayload(w http.ResponseWriter, r *http.Request) {
	var req brcode.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "bad_request", Message: err.Error()})
		return
	}
	h.respondPayload(w, r, h.withDefaults(req))
}

func (h *Handler) respondPayload(w http.ResponseWriter, r *http.Request, req brcode.Request) {
	payload, err := h.encoder.Encode(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, payloadResponse{
		Payload: payload,
		Static:  req.IsStatic(),
		QRSize:  req.Size(),
	})
}

func (h *Handler) getQRCode(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	payload, err := h.encoder.Encode(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	png, err := h.renderer.Render(payload, req.Size())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) requestFromQuery(r *http.Request) (brcode.Request, error) {
	q := r.URL.Query()
	req := brcode.Request{
		PixKey:        q.Get("key"),
		MerchantName:  q.Get("name"),
		MerchantCity:  q.Get("city"),
		TransactionID: q.Get("txid"),
	}

	if s := strings.TrimSpace(q.Get("amount")); s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return req, fmt.Errorf("%w: %q", brcode.ErrInvalidAmount, s)
		}
		req.Amount = &amount
	}

	if s := strings.TrimSpace(q.Get("size")); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil {
			return req, &brcode.ValidationError{Tag: "qr_size", Rule: "int", Message: fmt.Sprintf("size %q is not a number", s)}
		}
		req.QRSize = size
	}

	return h.withDefaults(req), nil
}

func (h *Handler) withDefaults(req brcode.Request) brcode.Request {
	if req.PixKey == "" {
		req.PixKey = h.merchant.PixKey
	}
	if req.MerchantName == "" {
		req.MerchantName = h.merchant.Name
	}
	if req.MerchantCity == "" {
		req.MerchantCity = h.merchant.City
	}
	if req.QRSize == 0 {
		req.QRSize = h.merchant.QRSize
	}
	return req
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, brcode.ErrFieldOverflow):
		status, code = http.StatusUnprocessableEntity, "field_overflow"
	case errors.Is(err, brcode.ErrMissingField):
		status, code = http.StatusUnprocessableEntity, "missing_field"
	case errors.Is(err, brcode.ErrInvalidAmount):
		status, code = http.StatusUnprocessableEntity, "invalid_amount"
	case errors.Is(err, brcode.ErrValidationFailed):
		status, code = http.StatusUnprocessableEntity, "validation_failed"
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("failed to serve pix request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		h.log.Debug("rejected pix request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("code", code),
			zap.Error(err),
		)
	}

	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
