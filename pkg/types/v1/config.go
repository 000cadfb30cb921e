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

// ModelDefinition identifies a versioned model package to fetch. It is
// supplied by the caller and never mutated by the fetch layer.
type ModelDefinition struct {
	Repository   string `yaml:"repository,omitempty" mapstructure:"repository"`
	Package      string `yaml:"package,omitempty" mapstructure:"package"`
	PackageGroup string `yaml:"packageGroup,omitempty" mapstructure:"packageGroup"`
	Version      string `yaml:"version,omitempty" mapstructure:"version"`
	Path         string `yaml:"path,omitempty" mapstructure:"path"`
}

// RepositoryConfig is one configured repository entry. Protocol selects the
// backend type, Properties carries backend specific settings such as the
// repository URL, credentials or index format hints.
type RepositoryConfig struct {
	Protocol   string            `yaml:"protocol,omitempty" mapstructure:"protocol"`
	Properties map[string]string `yaml:"properties,omitempty" mapstructure:"properties"`
}

// Property returns the named plugin property or an empty string if unset.
func (r *RepositoryConfig) Property(key string) string {
	if r == nil || r.Properties == nil {
		return ""
	}
	return r.Properties[key]
}

// RuntimeConfig is the repository section of the system configuration,
// loaded once at startup and read-only afterwards.
type RuntimeConfig struct {
	Repositories map[string]*RepositoryConfig `yaml:"repositories,omitempty" mapstructure:"repositories"`
}

// Config holds the ambient collaborators shared by all backends
type Config struct {
	Fs     FS
	Logger Logger
	Runner Runner
	Client HTTPClient
}

// RunConfig is the full configuration of a fetch run, the ambient
// collaborators plus the repository entries loaded from the config file
type RunConfig struct {
	Config        `yaml:"-" mapstructure:"-"`
	RuntimeConfig `yaml:",inline" mapstructure:",squash"`
}
