/*
Copyright © 2022 - 2025 SUSE LLC

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

package v1

// HTTPResponse is the fully buffered result of an index query. URL is the
// final request URL after redirects, needed to resolve relative links found
// in the body.
type HTTPResponse struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
	URL         string
}

type HTTPClient interface {
	// GetURL downloads the contents of the given URL to the given destination
	GetURL(log Logger, url string, destination string) error
	// Get performs a plain GET request with the given Accept header and
	// buffers the whole response. Non-2xx responses are returned to the
	// caller, not turned into errors.
	Get(log Logger, url string, accept string) (*HTTPResponse, error)
}
