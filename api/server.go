// Package api exposes the strip colour sequencer over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/stream"
)

// ColourState is the body of GET /colour.
type ColourState struct {
	Colour  string `json:"colour"`
	Active  bool   `json:"active"`
	Pending int    `json:"pending"`
}

// PushRequest is the body of POST /colour.
type PushRequest struct {
	To       string `json:"to"`
	Duration string `json:"duration"`
	Curve    string `json:"curve"`
	Mode     string `json:"mode"`
}

// SetRequest is the body of PUT /colour.
type SetRequest struct {
	Colour string `json:"colour"`
}

// Api serves the colour controls of a stream.Controller.
type Api struct {
	controller *stream.Controller
	logger     *log.Logger
}

func NewApi(controller *stream.Controller, logger *log.Logger) *Api {
	a := new(Api)
	a.controller = controller
	a.logger = logger
	return a
}

// Handler returns the router for the API.
func (a *Api) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.healthz)
	r.Get("/colour", a.getColour)
	r.Post("/colour", a.pushColour)
	r.Put("/colour", a.setColour)
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (a *Api) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "ok")
}

func (a *Api) getColour(w http.ResponseWriter, r *http.Request) {
	st := a.controller.Colour()
	writeJSON(w, http.StatusOK, ColourState{
		Colour:  st.Colour.Clamped().Hex(),
		Active:  st.Active,
		Pending: st.Pending,
	})
}

func (a *Api) pushColour(w http.ResponseWriter, r *http.Request) {
	var body PushRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	req, mode, err := body.build()
	if err != nil {
		badRequest(w, err)
		return
	}

	a.controller.PushColour(req, mode)
	a.logger.Debug("colour pushed", "to", body.To, "duration", req.Duration(), "mode", body.Mode)
	w.WriteHeader(http.StatusAccepted)
}

func (a *Api) setColour(w http.ResponseWriter, r *http.Request) {
	var body SetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, fmt.Errorf("invalid JSON: %w", err))
		return
	}

	c, err := scene.ParseColour(body.Colour)
	if err != nil {
		badRequest(w, err)
		return
	}

	a.controller.SetColour(c)
	a.logger.Debug("colour set", "colour", body.Colour)
	w.WriteHeader(http.StatusNoContent)
}

func (p PushRequest) build() (req anim.Request[colorful.Color], mode anim.Mode, err error) {
	switch p.Mode {
	case "", "append":
		mode = anim.Append
	case "replace":
		mode = anim.Replace
	default:
		return req, mode, fmt.Errorf("unknown mode %q", p.Mode)
	}

	to, err := scene.ParseColour(p.To)
	if err != nil {
		return req, mode, err
	}
	d, err := scene.ParseDuration(p.Duration)
	if err != nil {
		return req, mode, err
	}
	curve, err := anim.CurveByName(p.Curve)
	if err != nil {
		return req, mode, err
	}

	req, err = anim.NewRequest(to, d, curve)
	return req, mode, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}
