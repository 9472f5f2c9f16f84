/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package server provides an in-memory stand-in for the booking service so
// the conformance suites can run without a deployed instance.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"

	"github.com/nscaledev/booker-conformance/pkg/server/handler"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Options are server level options.
type Options struct {
	// ListenAddress is the host:port to listen on.
	ListenAddress string

	// ReadTimeout bounds reading a whole request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a whole response.
	WriteTimeout time.Duration

	// Handler options.
	Handler handler.Options
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-listen-address", ":3001", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")

	o.Handler.AddFlags(f)
}

// DefaultOptions returns options as they would be after flag parsing with
// no arguments.
func DefaultOptions() *Options {
	o := &Options{}
	o.AddFlags(pflag.NewFlagSet("", pflag.ContinueOnError))

	return o
}

// NewRouter returns the routed service backed by the given store.
func NewRouter(store *handler.Store, options *Options) http.Handler {
	h := handler.New(store, &options.Handler)

	notFound := func(w http.ResponseWriter, r *http.Request) {
		handler.WriteStatus(w, http.StatusNotFound)
	}

	router := chi.NewRouter()
	router.Use(logging)

	// Unrouted methods are reported as missing rather than not allowed.
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Get("/ping", h.Ping)
	router.Post("/auth", h.CreateToken)
	router.Get("/booking", h.GetBookingIds)
	router.Post("/booking", h.CreateBooking)

	router.Get("/booking/{id}", withID(h.GetBooking))
	router.Put("/booking/{id}", withID(h.UpdateBooking))
	router.Patch("/booking/{id}", withID(h.PartialUpdateBooking))
	router.Delete("/booking/{id}", withID(h.DeleteBooking))

	return router
}

func withID(f func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f(w, r, chi.URLParam(r, "id"))
	}
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context()).WithValues("method", r.Method, "path", r.URL.Path)

		if traceParent := r.Header.Get("Traceparent"); traceParent != "" {
			logger = logger.WithValues("traceparent", traceParent)
		}

		logger.V(1).Info("request")

		next.ServeHTTP(w, r.WithContext(log.IntoContext(r.Context(), logger)))
	})
}

// Server runs the stand-in until its context is cancelled.
type Server struct {
	// Options are server specific options.
	Options Options
}

func (s *Server) AddFlags(f *pflag.FlagSet) {
	s.Options.AddFlags(f)
}

func (s *Server) GetServer() *http.Server {
	return &http.Server{
		Addr:              s.Options.ListenAddress,
		ReadTimeout:       s.Options.ReadTimeout,
		ReadHeaderTimeout: s.Options.ReadTimeout,
		WriteTimeout:      s.Options.WriteTimeout,
		Handler:           NewRouter(handler.NewStore(), &s.Options),
	}
}

func (s *Server) Run(ctx context.Context) error {
	log := log.FromContext(ctx)

	server := s.GetServer()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error(err, "server shutdown failed")
		}
	}()

	log.Info("server listening", "address", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}

	return nil
}
