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

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotInitialized is raised when specs are used before being bound
	// to a service address.
	ErrNotInitialized = errors.New("specs not initialized")

	// ErrInvalidAddress is raised when a service address cannot be used.
	ErrInvalidAddress = errors.New("invalid service address")
)

// ContentType is a media type without parameters.
type ContentType string

const (
	// ContentTypeNone disables content type checks.
	ContentTypeNone ContentType = ""
	ContentTypeJSON ContentType = "application/json"
	ContentTypeXML  ContentType = "application/xml"

	// ContentTypeHTML is what the service labels XML responses with.
	ContentTypeHTML ContentType = "text/html"

	// ContentTypeText is used for bare status bodies.
	ContentTypeText ContentType = "text/plain"
)

// ServiceAddress locates the service under test.  The host may carry a
// scheme, http is assumed otherwise.
type ServiceAddress struct {
	Host string
	Port int
}

func (a ServiceAddress) String() string {
	return fmt.Sprintf("%s:%d", a.baseURL(), a.Port)
}

func (a ServiceAddress) baseURL() string {
	host := strings.TrimSuffix(a.Host, "/")

	if strings.Contains(host, "://") {
		return host
	}

	return "http://" + host
}

// RequestSpec describes how a request is sent.
type RequestSpec struct {
	BaseURL     string
	Port        int
	ContentType ContentType
	Accept      ContentType
	Logging     bool
}

// IsZero is true for a spec that was never bound to an address.
func (s RequestSpec) IsZero() bool {
	return s == RequestSpec{}
}

// URL joins the base URL and port.
func (s RequestSpec) URL() string {
	return fmt.Sprintf("%s:%d", s.BaseURL, s.Port)
}

// ResponseSpec describes what a successful response looks like.
type ResponseSpec struct {
	ExpectedStatus      int
	ExpectedContentType ContentType
}

// WithStatus returns a copy expecting a different status code.
func (s ResponseSpec) WithStatus(status int) ResponseSpec {
	s.ExpectedStatus = status
	return s
}

// WithContentType returns a copy expecting a different content type.
func (s ResponseSpec) WithContentType(contentType ContentType) ResponseSpec {
	s.ExpectedContentType = contentType
	return s
}

// Specs hands out request and response specs bound to a single service.
type Specs struct {
	address ServiceAddress
}

// NewSpecs binds specs to an address.  Calling it again with a different
// address yields an independent registry.
func NewSpecs(address ServiceAddress) (*Specs, error) {
	if address.Host == "" {
		return nil, fmt.Errorf("%w: host is empty", ErrNotInitialized)
	}

	if address.Port < 1 || address.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidAddress, address.Port)
	}

	return &Specs{
		address: address,
	}, nil
}

// Address returns the bound address.
func (s *Specs) Address() ServiceAddress {
	if s == nil {
		return ServiceAddress{}
	}

	return s.address
}

func (s *Specs) requestSpec(contentType ContentType) RequestSpec {
	if s == nil {
		return RequestSpec{}
	}

	return RequestSpec{
		BaseURL:     s.address.baseURL(),
		Port:        s.address.Port,
		ContentType: contentType,
		Accept:      contentType,
		Logging:     true,
	}
}

// RequestSpec sends and accepts JSON.
func (s *Specs) RequestSpec() RequestSpec {
	return s.requestSpec(ContentTypeJSON)
}

// RequestSpecXML sends and accepts XML.
func (s *Specs) RequestSpecXML() RequestSpec {
	return s.requestSpec(ContentTypeXML)
}

func (s *Specs) responseSpec(contentType ContentType) ResponseSpec {
	if s == nil {
		return ResponseSpec{}
	}

	return ResponseSpec{
		ExpectedStatus:      http.StatusOK,
		ExpectedContentType: contentType,
	}
}

// ResponseSpec expects a 200 with a JSON body.
func (s *Specs) ResponseSpec() ResponseSpec {
	return s.responseSpec(ContentTypeJSON)
}

// ResponseSpecXML expects a 200 with an XML body.
func (s *Specs) ResponseSpecXML() ResponseSpec {
	return s.responseSpec(ContentTypeXML)
}
