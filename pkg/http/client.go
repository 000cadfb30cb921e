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

package http

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cavaliergopher/grab/v3"

	"github.com/modelrun/modelfetch/pkg/constants"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
	"github.com/modelrun/modelfetch/pkg/utils"
)

type Client struct {
	client *grab.Client
}

func NewClient() *Client {
	client := grab.NewClient()
	client.HTTPClient = &http.Client{Timeout: time.Second * constants.HTTPTimeout}
	return &Client{client: client}
}

// GetURL attempts to download the contents of the given URL to the given destination
func (c Client) GetURL(log v1.Logger, rawURL string, destination string) error { // nolint:revive
	req, err := grab.NewRequest(destination, rawURL)
	if err != nil {
		log.Errorf("Failed creating a request to '%s'", safe(rawURL))
		return err
	}

	// start download
	log.Infof("Downloading %v...", utils.LogSafeURL(req.URL()))
	resp := c.client.Do(req)

	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()

Loop:
	for {
		select {
		case <-t.C:
			log.Debugf("  transferred %v / %v bytes (%.2f%%)",
				resp.BytesComplete(),
				resp.Size(),
				100*resp.Progress())

		case <-resp.Done:
			// download is complete
			break Loop
		}
	}

	if err := resp.Err(); err != nil {
		log.Errorf("Download failed: %v", err)
		return err
	}

	log.Debugf("Download saved to %v", resp.Filename)
	return nil
}

// Get runs a single GET request with the given Accept header and buffers the
// full response body. HTTP level failures (non-2xx) are left to the caller.
func (c Client) Get(log v1.Logger, rawURL string, accept string) (*v1.HTTPResponse, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		log.Errorf("Failed creating a request to '%s'", safe(rawURL))
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	log.Infof("GET: %s", utils.LogSafeURL(req.URL))

	resp, err := c.client.HTTPClient.Do(req)
	if err != nil {
		log.Errorf("Request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &v1.HTTPResponse{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		URL:         resp.Request.URL.String(),
	}, nil
}

func safe(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return utils.LogSafeURL(u)
}
