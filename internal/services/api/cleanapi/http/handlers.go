// Package http is the clean API transport
package http

import (
	stdhttp "net/http"

	"rapih/internal/core/clean"
	"rapih/internal/modkit/httpkit"
	"rapih/internal/platform/net/http/bind"
	"rapih/internal/services/clean/domain"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps clean request bodies
const MaxBodyBytes = 8 << 20

func init() {
	err := bind.RegisterValidation("profile", "{0} must be one of tokenizer, analysis or model",
		func(fl validator.FieldLevel) bool {
			_, err := clean.ParseProfile(fl.Field().String())
			return err == nil
		})
	if err != nil {
		panic(err)
	}
}

// Register mounts the clean endpoints
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	opts := httpkit.JSONOptions{MaxBytes: MaxBodyBytes}
	httpkit.PostJSON(r, "/clean", h.clean, opts)
	httpkit.PostJSON(r, "/clean/explain", h.explain, opts)
	httpkit.PostJSON(r, "/clean/batch", h.batch, opts)
	httpkit.Get(r, "/profiles", h.profiles)
	httpkit.Get(r, "/lexicon", h.lexicon)
}

type handlers struct{ svc domain.ServicePort }

// @Summary Clean one text
// @Tags Clean
// @Param payload body domain.CleanRequest true "text and profile"
// @Success 200 {object} domain.Record
// @Router /clean [post]
func (h *handlers) clean(r *stdhttp.Request, in domain.CleanRequest) (any, error) {
	return h.svc.Clean(r.Context(), in)
}

// @Summary Clean one text with its stage trace
// @Tags Clean
// @Router /clean/explain [post]
func (h *handlers) explain(r *stdhttp.Request, in domain.CleanRequest) (any, error) {
	return h.svc.Explain(r.Context(), in)
}

// @Summary Clean a batch in input order
// @Tags Clean
// @Router /clean/batch [post]
func (h *handlers) batch(r *stdhttp.Request, in domain.BatchRequest) (any, error) {
	return h.svc.CleanBatch(r.Context(), in)
}

func (h *handlers) profiles(*stdhttp.Request) (any, error) { return h.svc.Profiles(), nil }

func (h *handlers) lexicon(*stdhttp.Request) (any, error) { return h.svc.Lexicon(), nil }
