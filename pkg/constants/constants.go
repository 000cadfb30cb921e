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

package constants

import (
	"os"
	"time"
)

const (
	// Repository protocol names for the built in backends
	IntegratedProtocol = "integrated"
	LocalProtocol      = "local"
	GitProtocol        = "git"
	PyPiProtocol       = "pypi"

	// Plugin property keys shared across backends
	RepoURLKey  = "repoUrl"
	TokenKey    = "token"
	UsernameKey = "username"
	PasswordKey = "password"

	// PyPI specific plugin property keys
	PipIndexKey        = "pipIndex"
	PipIndexURLKey     = "pipIndexUrl"
	PipSimpleFormatKey = "pipSimpleFormat"

	PipSimpleFormatJSON = "json"
	PipSimpleFormatHTML = "html"

	PipSimpleTypeJSON = "application/vnd.pypi.simple.v1+json"
	PipSimpleTypeHTML = "text/html"

	// Marker used by the simple index HTML pages to declare the API version
	PipRepositoryVersionMeta = "pypi:repository-version"

	GitCommand    = "git"
	GitTimeout    = 30 * time.Second
	GitRetryDelay = 1 * time.Second

	HTTPTimeout = 60

	FilePerm os.FileMode = 0666
	DirPerm  os.FileMode = 0755
)
