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

package utils

import (
	"net/url"
	"strings"
)

const redactedCredentials = "*****"

// LogSafeURL renders a URL with any userinfo credentials masked out, so it
// can be written to logs.
func LogSafeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	if u.User == nil {
		return u.String()
	}
	safe := *u
	safe.User = url.User(redactedCredentials)
	return safe.String()
}

// LogSafe masks credentials in a command line argument that may contain a
// URL. Arguments that do not parse as credential-bearing URLs are returned
// unchanged.
func LogSafe(arg string) string {
	if !strings.Contains(arg, "@") {
		return arg
	}
	u, err := url.Parse(arg)
	if err != nil || u.User == nil {
		return arg
	}
	return LogSafeURL(u)
}
