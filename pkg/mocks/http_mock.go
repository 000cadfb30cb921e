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

package mocks

import (
	"errors"
	"net/http"
	"os"

	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

// FakeHTTPClient is an implementation of HTTPClient interface used for testing
// It stores Get calls into ClientCalls for easy checking of what was called
type FakeHTTPClient struct {
	ClientCalls []string
	Error       bool
	// DownloadContent is written to the destination file on GetURL calls
	DownloadContent []byte
	// Responses maps request URLs to canned index responses for Get calls
	Responses map[string]*v1.HTTPResponse
}

// GetURL stores the url call into ClientCalls and writes any canned
// download content to the destination
func (m *FakeHTTPClient) GetURL(_ v1.Logger, url string, destination string) error {
	m.ClientCalls = append(m.ClientCalls, url)
	if m.Error {
		return errors.New("fake http error")
	}
	if m.DownloadContent != nil {
		return os.WriteFile(destination, m.DownloadContent, 0666)
	}
	return nil
}

// Get stores the url call into ClientCalls and returns the canned response
// for that url, or a 404 if none was registered
func (m *FakeHTTPClient) Get(_ v1.Logger, url string, _ string) (*v1.HTTPResponse, error) {
	m.ClientCalls = append(m.ClientCalls, url)
	if m.Error {
		return nil, errors.New("fake http error")
	}
	if resp, ok := m.Responses[url]; ok {
		return resp, nil
	}
	return &v1.HTTPResponse{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		URL:        url,
	}, nil
}

// WasGetCalledWith is a helper method to confirm that the client was called with the given url
func (m *FakeHTTPClient) WasGetCalledWith(url string) bool {
	for _, c := range m.ClientCalls {
		if c == url {
			return true
		}
	}
	return false
}
