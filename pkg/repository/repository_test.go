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
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/modelrun/modelfetch/pkg/mocks"
	"github.com/modelrun/modelfetch/pkg/repository"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

func TestRepositorySuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repository test suite")
}

var _ = Describe("Manager", Label("repository", "manager"), func() {
	var cfg *v1.Config
	var runtime *v1.RuntimeConfig

	BeforeEach(func() {
		cfg = &v1.Config{
			Logger: v1.NewNullLogger(),
			Runner: mocks.NewFakeRunner(),
			Client: &mocks.FakeHTTPClient{},
		}
		runtime = &v1.RuntimeConfig{
			Repositories: map[string]*v1.RepositoryConfig{
				"bundled": {Protocol: "integrated"},
				"models": {
					Protocol:   "local",
					Properties: map[string]string{"repoUrl": "/srv/models"},
				},
			},
		}
	})

	It("constructs every configured backend once and caches it", func() {
		manager, err := repository.NewManager(cfg, runtime, repository.NewRegistry())
		Expect(err).To(BeNil())

		first, err := manager.GetRepository("models")
		Expect(err).To(BeNil())
		second, err := manager.GetRepository("models")
		Expect(err).To(BeNil())
		Expect(first).To(BeIdenticalTo(second))
	})

	It("fails for repository names missing from configuration", func() {
		manager, err := repository.NewManager(cfg, runtime, repository.NewRegistry())
		Expect(err).To(BeNil())

		_, err = manager.GetRepository("nonexisting")
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("unknown or not configured"))
	})

	It("fails on unregistered protocols and hints at a missing plugin", func() {
		runtime.Repositories["weird"] = &v1.RepositoryConfig{Protocol: "svn"}
		_, err := repository.NewManager(cfg, runtime, repository.NewRegistry())
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("[svn] is not recognised"))
		Expect(err.Error()).To(ContainSubstring("missing model repository plugin"))
	})

	It("aggregates several construction failures", func() {
		runtime.Repositories["weird"] = &v1.RepositoryConfig{Protocol: "svn"}
		runtime.Repositories["broken"] = &v1.RepositoryConfig{Protocol: "local"}
		_, err := repository.NewManager(cfg, runtime, repository.NewRegistry())
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("[svn] is not recognised"))
		Expect(err.Error()).To(ContainSubstring("repoUrl"))
	})

	It("allows registering external backend types", func() {
		registry := repository.NewRegistry()
		registry.Register("svn", func(_ *v1.Config, _ *v1.RepositoryConfig) (repository.Repository, error) {
			return &repository.IntegratedSource{}, nil
		})
		runtime.Repositories["weird"] = &v1.RepositoryConfig{Protocol: "svn"}

		manager, err := repository.NewManager(cfg, runtime, registry)
		Expect(err).To(BeNil())
		repo, err := manager.GetRepository("weird")
		Expect(err).To(BeNil())
		Expect(repo).NotTo(BeNil())
	})
})
