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
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

// IntegratedSource represents model code already bundled with the platform,
// so there is never anything to check out.
type IntegratedSource struct{}

func NewIntegratedSource(_ *v1.Config, _ *v1.RepositoryConfig) (Repository, error) {
	return &IntegratedSource{}, nil
}

func (s *IntegratedSource) CheckoutKey(_ *v1.ModelDefinition) string {
	return "integrated"
}

func (s *IntegratedSource) PackagePath(_ *v1.ModelDefinition, _ string) string {
	return ""
}

func (s *IntegratedSource) DoCheckout(model *v1.ModelDefinition, checkoutDir string) (string, error) {
	// For the integrated source there is nothing to check out
	return s.PackagePath(model, checkoutDir), nil
}
