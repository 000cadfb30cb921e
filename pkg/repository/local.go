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
	"path/filepath"

	"github.com/modelrun/modelfetch/pkg/constants"
	fetchError "github.com/modelrun/modelfetch/pkg/error"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

// LocalRepository serves model packages straight from a base path on the
// local filesystem, checkout is a no-op.
type LocalRepository struct {
	repoURL string
}

func NewLocalRepository(_ *v1.Config, repoConfig *v1.RepositoryConfig) (Repository, error) {
	repoURL := repoConfig.Property(constants.RepoURLKey)
	if repoURL == "" {
		return nil, fetchError.New(
			fmt.Sprintf("missing required property [%s] in local repository config", constants.RepoURLKey),
			fetchError.RepoConfig)
	}
	return &LocalRepository{repoURL: repoURL}, nil
}

func (l *LocalRepository) CheckoutKey(_ *v1.ModelDefinition) string {
	// local content is always current, there is nothing to pin
	return "local"
}

func (l *LocalRepository) PackagePath(model *v1.ModelDefinition, _ string) string {
	return filepath.Join(l.repoURL, model.Path)
}

func (l *LocalRepository) DoCheckout(model *v1.ModelDefinition, checkoutDir string) (string, error) {
	// For local repos checkout is a no-op since the model is already local,
	// just return the existing package path
	return l.PackagePath(model, checkoutDir), nil
}
