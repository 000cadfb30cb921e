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
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/modelrun/modelfetch/pkg/constants"
	fetchError "github.com/modelrun/modelfetch/pkg/error"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

// Repository is the capability every model repository backend implements.
// Backends are constructed once per configured repository name and reused
// for all checkouts of that repository.
type Repository interface {
	// CheckoutKey returns a stable identity string for the given model,
	// used by callers for checkout directory reuse and dedup. It must be
	// pure and deterministic, two models with equal keys refer to
	// identical content.
	CheckoutKey(model *v1.ModelDefinition) string
	// PackagePath computes, without side effects, where the model package
	// will live once checked out. An empty string means there is nothing
	// to resolve on disk.
	PackagePath(model *v1.ModelDefinition, checkoutDir string) string
	// DoCheckout materializes the model content under checkoutDir and
	// returns the resulting package path. The checkout directory lifecycle
	// belongs to the caller.
	DoCheckout(model *v1.ModelDefinition, checkoutDir string) (string, error)
}

// Factory builds a backend instance from its repository configuration.
// Factories fail when required properties are missing.
type Factory func(cfg *v1.Config, repoConfig *v1.RepositoryConfig) (Repository, error)

// Registry maps repository protocol names to backend factories. It is
// seeded with the built in backends and can be extended with externally
// supplied types before any Manager is constructed from it.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.Register(constants.IntegratedProtocol, NewIntegratedSource)
	r.Register(constants.LocalProtocol, NewLocalRepository)
	r.Register(constants.GitProtocol, NewGitRepository)
	r.Register(constants.PyPiProtocol, NewPyPiRepository)
	return r
}

func (r *Registry) Register(protocol string, factory Factory) {
	r.factories[protocol] = factory
}

// Manager resolves configured repository names to backend instances. Every
// backend is constructed once at manager construction, the instance map is
// never mutated afterwards so concurrent lookups are safe.
type Manager struct {
	logger v1.Logger
	repos  map[string]Repository
}

func NewManager(cfg *v1.Config, runtime *v1.RuntimeConfig, registry *Registry) (*Manager, error) {
	repos := map[string]Repository{}

	var errs error
	for name, repoConfig := range runtime.Repositories {
		factory, ok := registry.factories[repoConfig.Protocol]
		if !ok {
			msg := fmt.Sprintf(
				"model repository type [%s] is not recognised"+
					" (this could indicate a missing model repository plugin)", repoConfig.Protocol)
			cfg.Logger.Error(msg)
			errs = multierror.Append(errs, fetchError.New(msg, fetchError.UnknownProtocol))
			continue
		}

		repo, err := factory(cfg, repoConfig)
		if err != nil {
			cfg.Logger.Errorf("failed setting up repository [%s]: %s", name, err.Error())
			errs = multierror.Append(errs, err)
			continue
		}
		repos[name] = repo
	}
	if errs != nil {
		return nil, errs
	}

	return &Manager{logger: cfg.Logger, repos: repos}, nil
}

// GetRepository returns the backend instance configured under the given
// name. Repeated calls with the same name return the same instance.
func (m *Manager) GetRepository(name string) (Repository, error) {
	repo, ok := m.repos[name]
	if !ok {
		msg := fmt.Sprintf(
			"model repository [%s] is unknown or not configured"+
				" (this could indicate a missing repository entry in the system config)", name)
		m.logger.Error(msg)
		return nil, fetchError.New(msg, fetchError.UnknownRepository)
	}
	return repo, nil
}
