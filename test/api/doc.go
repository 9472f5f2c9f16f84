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

// Package api provides conformance test utilities for the booking service.
//
// # Separate Client Implementation
//
// The package deliberately speaks raw HTTP through APIClient rather than a
// generated client.  The service under test deviates from idiomatic REST in
// several places (201 Created for a deletion, a teapot for a bad Accept header,
// XML served as HTML) and a generated client would hide exactly what the
// suites need to assert on: status codes, content types and raw bodies.
//
// The client adds features tailored to conformance testing:
//   - W3C trace context propagation for request correlation
//   - Request and response logging through the Ginkgo writer
//   - Cookie and basic authentication per call
//   - Direct access to HTTP status codes and response bodies
//
// # Request and Response Specs
//
// A Specs registry is bound once per run to the address of the service.  It
// hands out RequestSpec and ResponseSpec values that describe how to talk to
// the service and what a successful answer looks like.  Both are plain
// values, so per call overrides never leak between tests.
package api
