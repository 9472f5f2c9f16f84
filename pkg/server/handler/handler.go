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

// Package handler implements the booking service operations for the
// in-memory stand-in.  Status codes and bodies mirror the real service,
// quirks included.
package handler

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"mime"
	"net/http"
	"strconv"
	"sync"

	"github.com/nscaledev/booker-conformance/pkg/booking"
	"github.com/nscaledev/booker-conformance/pkg/openapi"
	"github.com/nscaledev/booker-conformance/pkg/schema"

	"k8s.io/apimachinery/pkg/util/rand"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// tokenLength matches the length of tokens issued by the real service.
	tokenLength = 15

	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"

	mediaTypeJSON = "application/json"
	mediaTypeXML  = "application/xml"
)

type Handler struct {
	// store holds all bookings.
	store *Store

	// options defines the credentials that may be exchanged for a token.
	options *Options

	// tokens are all issued session tokens, they never expire.
	tokens     map[string]struct{}
	tokensLock sync.Mutex
}

func New(store *Store, options *Options) *Handler {
	return &Handler{
		store:   store,
		options: options,
		tokens:  map[string]struct{}{},
	}
}

// WriteStatus replies with the status text as a plain text body.
func WriteStatus(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(status)

	_, _ = io.WriteString(w, http.StatusText(status))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.FromContext(r.Context()).Error(err, "failed to marshal response")
		WriteStatus(w, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	_, _ = w.Write(data)
}

// writeXML serves XML as text/html, as the real service does.
func writeXML(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := xml.Marshal(v)
	if err != nil {
		log.FromContext(r.Context()).Error(err, "failed to marshal response")
		WriteStatus(w, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)

	_, _ = w.Write(data)
}

func mediaType(value string) string {
	if value == "" {
		return ""
	}

	t, _, err := mime.ParseMediaType(value)
	if err != nil {
		return value
	}

	return t
}

func wantsXML(r *http.Request) bool {
	return mediaType(r.Header.Get("Accept")) == mediaTypeXML
}

func acceptable(r *http.Request) bool {
	switch mediaType(r.Header.Get("Accept")) {
	case "", "*/*", mediaTypeJSON, mediaTypeXML:
		return true
	}

	return false
}

// readBooking decodes a JSON or XML booking and checks it is complete.
func readBooking(r *http.Request) (booking.Booking, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return booking.Booking{}, err
	}

	var b booking.Booking

	if mediaType(r.Header.Get("Content-Type")) == mediaTypeXML {
		if err := xml.Unmarshal(data, &b); err != nil {
			return booking.Booking{}, err
		}
	} else {
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
			return booking.Booking{}, err
		}
	}

	if err := validBooking(b); err != nil {
		return booking.Booking{}, err
	}

	return b, nil
}

func validBooking(b booking.Booking) error {
	if err := schema.ValidateRequest(b); err != nil {
		return err
	}

	for _, value := range []*string{b.BookingDates.Checkin, b.BookingDates.Checkout} {
		if value == nil {
			return openapi.ErrInvalidDate
		}

		var date openapi.Date

		if err := date.UnmarshalText([]byte(*value)); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) issueToken() string {
	h.tokensLock.Lock()
	defer h.tokensLock.Unlock()

	token := rand.String(tokenLength)
	h.tokens[token] = struct{}{}

	return token
}

func (h *Handler) validToken(token string) bool {
	h.tokensLock.Lock()
	defer h.tokensLock.Unlock()

	_, ok := h.tokens[token]

	return ok
}

// authorized accepts either a token cookie or basic auth.
func (h *Handler) authorized(r *http.Request) bool {
	if cookie, err := r.Cookie("token"); err == nil && h.validToken(cookie.Value) {
		return true
	}

	username, password, ok := r.BasicAuth()

	return ok && username == h.options.Username && password == h.options.Password
}

func parseID(value string) (int, bool) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	return id, true
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, http.StatusCreated)
}

func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var credentials booking.Credentials

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil || credentials.Username != h.options.Username || credentials.Password != h.options.Password {
		writeJSON(w, r, http.StatusOK, &booking.Token{Reason: "Bad credentials"})
		return
	}

	token := h.issueToken()

	writeJSON(w, r, http.StatusOK, &booking.Token{Token: &token})
}

func (h *Handler) GetBookingIds(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := Filter{
		Firstname: query.Get("firstname"),
		Lastname:  query.Get("lastname"),
		Checkin:   query.Get("checkin"),
		Checkout:  query.Get("checkout"),
	}

	for _, value := range []string{filter.Checkin, filter.Checkout} {
		if value == "" {
			continue
		}

		var date openapi.Date

		if err := date.UnmarshalText([]byte(value)); err != nil {
			WriteStatus(w, http.StatusInternalServerError)
			return
		}
	}

	ids := h.store.List(filter)

	result := make([]booking.BookingID, len(ids))

	for i, id := range ids {
		result[i] = booking.BookingID{BookingID: id}
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if !acceptable(r) {
		WriteStatus(w, http.StatusTeapot)
		return
	}

	b, err := readBooking(r)
	if err != nil {
		log.FromContext(r.Context()).Info("rejected booking", "error", err.Error())
		WriteStatus(w, http.StatusInternalServerError)

		return
	}

	id := h.store.Create(b)

	writeJSON(w, r, http.StatusOK, &booking.CreatedBooking{BookingID: id, Booking: b})
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, id string) {
	bookingID, ok := parseID(id)
	if !ok {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	b, err := h.store.Get(bookingID)
	if err != nil {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	if wantsXML(r) {
		writeXML(w, r, http.StatusOK, &b)
		return
	}

	writeJSON(w, r, http.StatusOK, &b)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request, id string) {
	if !h.authorized(r) {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	bookingID, ok := parseID(id)
	if !ok {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	if _, err := h.store.Get(bookingID); err != nil {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	b, err := readBooking(r)
	if err != nil {
		WriteStatus(w, http.StatusBadRequest)
		return
	}

	if err := h.store.Replace(bookingID, b); err != nil {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, r, http.StatusOK, &b)
}

func (h *Handler) PartialUpdateBooking(w http.ResponseWriter, r *http.Request, id string) {
	if !h.authorized(r) {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	bookingID, ok := parseID(id)
	if !ok {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	current, err := h.store.Get(bookingID)
	if err != nil {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		WriteStatus(w, http.StatusBadRequest)
		return
	}

	b, err := booking.MergePatch(current, json.RawMessage(data))
	if err != nil {
		WriteStatus(w, http.StatusBadRequest)
		return
	}

	if err := h.store.Replace(bookingID, b); err != nil {
		WriteStatus(w, http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, &b)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request, id string) {
	if !h.authorized(r) {
		WriteStatus(w, http.StatusForbidden)
		return
	}

	bookingID, ok := parseID(id)
	if !ok {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	if err := h.store.Delete(bookingID); err != nil {
		WriteStatus(w, http.StatusMethodNotAllowed)
		return
	}

	WriteStatus(w, http.StatusCreated)
}
