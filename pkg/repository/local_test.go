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

package repository_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/modelrun/modelfetch/pkg/repository"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

var _ = Describe("IntegratedSource", Label("repository", "integrated"), func() {
	var repo repository.Repository
	var model *v1.ModelDefinition

	BeforeEach(func() {
		var err error
		repo, err = repository.NewIntegratedSource(nil, &v1.RepositoryConfig{Protocol: "integrated"})
		Expect(err).To(BeNil())
		model = &v1.ModelDefinition{Package: "mymodel", Version: "1.0.0"}
	})

	It("has a constant checkout key", func() {
		Expect(repo.CheckoutKey(model)).To(Equal("integrated"))
	})

	It("has nothing to check out", func() {
		path, err := repo.DoCheckout(model, "/tmp/checkout")
		Expect(err).To(BeNil())
		Expect(path).To(BeEmpty())
	})
})

var _ = Describe("LocalRepository", Label("repository", "local"), func() {
	var repo repository.Repository
	var model *v1.ModelDefinition

	BeforeEach(func() {
		var err error
		repo, err = repository.NewLocalRepository(nil, &v1.RepositoryConfig{
			Protocol:   "local",
			Properties: map[string]string{"repoUrl": "/srv/models"},
		})
		Expect(err).To(BeNil())
		model = &v1.ModelDefinition{Package: "mymodel", Version: "1.0.0", Path: "src/model"}
	})

	It("requires the repoUrl property", func() {
		_, err := repository.NewLocalRepository(nil, &v1.RepositoryConfig{Protocol: "local"})
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("repoUrl"))
	})

	It("has a constant checkout key", func() {
		Expect(repo.CheckoutKey(model)).To(Equal("local"))
	})

	It("joins the base path with the model path", func() {
		Expect(repo.PackagePath(model, "/tmp/checkout")).To(Equal(filepath.Join("/srv/models", "src/model")))
	})

	It("checkout is an idempotent no-op", func() {
		first, err := repo.DoCheckout(model, "/tmp/checkout")
		Expect(err).To(BeNil())
		second, err := repo.DoCheckout(model, "/tmp/checkout")
		Expect(err).To(BeNil())
		Expect(first).To(Equal(second))
		Expect(first).To(Equal(filepath.Join("/srv/models", "src/model")))
	})
})
