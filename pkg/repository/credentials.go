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

package repository

import (
	"net/url"
	"strings"

	"github.com/modelrun/modelfetch/pkg/constants"
)

// ExtractCredentials resolves the credential string for a repository URL.
// Precedence: an explicit token property, then explicit username and
// password properties joined as "user:pass", then credentials already
// embedded in the URL authority. Returns an empty string when none apply.
func ExtractCredentials(u *url.URL, properties map[string]string) string {
	token := properties[constants.TokenKey]
	username := properties[constants.UsernameKey]
	password := properties[constants.PasswordKey]

	if token != "" {
		return token
	}

	if username != "" && password != "" {
		return username + ":" + password
	}

	if u != nil && u.User != nil {
		return u.User.String()
	}

	return ""
}

// ApplyCredentials returns a copy of the URL with its authority rewritten to
// carry the given credentials, replacing any embedded ones. Host and port are
// left untouched and the input URL is never mutated. Empty credentials return
// the URL as is.
func ApplyCredentials(u *url.URL, credentials string) *url.URL {
	if credentials == "" {
		return u
	}

	applied := *u
	if user, pass, found := strings.Cut(credentials, ":"); found {
		applied.User = url.UserPassword(user, pass)
	} else {
		applied.User = url.User(credentials)
	}
	return &applied
}
