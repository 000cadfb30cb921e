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

package utils_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/modelrun/modelfetch/pkg/constants"
	"github.com/modelrun/modelfetch/pkg/utils"
)

var _ = Describe("FS helpers", Label("utils", "fs"), func() {
	var fs *vfst.TestFS
	var cleanup func()

	BeforeEach(func() {
		var err error
		fs, cleanup, err = vfst.NewTestFS(map[string]interface{}{
			"/etc/config.yaml": "repositories: {}\n",
			"/srv/models/.keep": "",
		})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		cleanup()
	})

	Describe("Exists", func() {
		It("finds existing files", func() {
			Expect(utils.Exists(fs, "/etc/config.yaml")).To(BeTrue())
		})

		It("reports missing paths without error", func() {
			exists, err := utils.Exists(fs, "/no/such/path")
			Expect(err).To(BeNil())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("IsDir", func() {
		It("distinguishes directories from files", func() {
			Expect(utils.IsDir(fs, "/srv/models")).To(BeTrue())
			Expect(utils.IsDir(fs, "/etc/config.yaml")).To(BeFalse())
		})

		It("errors on missing paths", func() {
			_, err := utils.IsDir(fs, "/no/such/path")
			Expect(err).NotTo(BeNil())
		})
	})

	Describe("MkdirAll", func() {
		It("creates nested directories", func() {
			Expect(utils.MkdirAll(fs, "/var/cache/models/checkout", constants.DirPerm)).To(BeNil())
			Expect(utils.IsDir(fs, "/var/cache/models/checkout")).To(BeTrue())
		})

		It("succeeds on already existing directories", func() {
			Expect(utils.MkdirAll(fs, "/srv/models", constants.DirPerm)).To(BeNil())
		})

		It("refuses to write on a read only filesystem", func() {
			roFS := vfs.NewReadOnlyFS(fs)
			err := utils.MkdirAll(roFS, "/var/cache", constants.DirPerm)
			Expect(err).NotTo(BeNil())
		})
	})
})
