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
	"archive/zip"
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/modelrun/modelfetch/pkg/constants"
	"github.com/modelrun/modelfetch/pkg/utils"
)

func buildZip(entries map[string]string) []byte {
	buf := &bytes.Buffer{}
	writer := zip.NewWriter(buf)
	for name, content := range entries {
		f, err := writer.Create(name)
		Expect(err).To(BeNil())
		_, err = f.Write([]byte(content))
		Expect(err).To(BeNil())
	}
	Expect(writer.Close()).To(BeNil())
	return buf.Bytes()
}

var _ = Describe("ExtractZip", Label("utils", "extract"), func() {
	var fs *vfst.TestFS
	var cleanup func()

	BeforeEach(func() {
		var err error
		fs, cleanup, err = vfst.NewTestFS(map[string]interface{}{
			"/checkout/.keep": "",
		})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		cleanup()
	})

	It("unpacks files preserving the directory layout", func() {
		archive := buildZip(map[string]string{
			"mymodel/model.py":                 "class Model: pass\n",
			"mymodel/weights/data.bin":         "weights",
			"mymodel-1.0.0.dist-info/METADATA": "Name: mymodel\n",
		})
		Expect(fs.WriteFile("/checkout/pkg.whl", archive, constants.FilePerm)).To(BeNil())

		count, err := utils.ExtractZip(fs, "/checkout/pkg.whl", "/checkout")
		Expect(err).To(BeNil())
		Expect(count).To(Equal(3))

		content, err := fs.ReadFile("/checkout/mymodel/model.py")
		Expect(err).To(BeNil())
		Expect(string(content)).To(ContainSubstring("class Model"))

		content, err = fs.ReadFile("/checkout/mymodel/weights/data.bin")
		Expect(err).To(BeNil())
		Expect(string(content)).To(Equal("weights"))
	})

	It("creates explicit directory entries", func() {
		archive := buildZip(map[string]string{
			"mymodel/":       "",
			"mymodel/run.py": "print('hi')\n",
		})
		Expect(fs.WriteFile("/checkout/pkg.whl", archive, constants.FilePerm)).To(BeNil())

		count, err := utils.ExtractZip(fs, "/checkout/pkg.whl", "/checkout")
		Expect(err).To(BeNil())
		// the directory entry does not count as an extracted file
		Expect(count).To(Equal(1))
		Expect(utils.IsDir(fs, "/checkout/mymodel")).To(BeTrue())
	})

	It("rejects entries escaping the destination", func() {
		archive := buildZip(map[string]string{
			"../evil.py": "import os\n",
		})
		Expect(fs.WriteFile("/checkout/pkg.whl", archive, constants.FilePerm)).To(BeNil())

		_, err := utils.ExtractZip(fs, "/checkout/pkg.whl", "/checkout")
		Expect(err).NotTo(BeNil())
		Expect(err.Error()).To(ContainSubstring("illegal path"))

		exists, err := utils.Exists(fs, "/evil.py")
		Expect(err).To(BeNil())
		Expect(exists).To(BeFalse())
	})

	It("fails on a missing archive", func() {
		_, err := utils.ExtractZip(fs, "/checkout/missing.whl", "/checkout")
		Expect(err).NotTo(BeNil())
	})

	It("fails on corrupt archive data", func() {
		Expect(fs.WriteFile("/checkout/pkg.whl", []byte("not a zip"), constants.FilePerm)).To(BeNil())
		_, err := utils.ExtractZip(fs, "/checkout/pkg.whl", "/checkout")
		Expect(err).NotTo(BeNil())
	})
})
