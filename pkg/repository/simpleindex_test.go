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
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/modelrun/modelfetch/pkg/repository"
)

var _ = Describe("ParseSimpleHTML", Label("repository", "simpleindex"), func() {
	const pageURL = "https://pypi.example.com/simple/pkg/"

	parse := func(body string) *repository.PackageIndex {
		index, err := repository.ParseSimpleHTML(pageURL, "pkg", strings.NewReader(body))
		Expect(err).To(BeNil())
		return index
	}

	It("extracts filename, hash and yanked flag from an anchor", func() {
		index := parse(`<html><body>
			<a href="pkg-1.0-any.whl#sha256=abc" data-yanked>pkg-1.0-any.whl</a>
		</body></html>`)

		Expect(index.Name).To(Equal("pkg"))
		Expect(index.Files).To(HaveLen(1))

		file := index.Files[0]
		Expect(file.Filename).To(Equal("pkg-1.0-any.whl"))
		Expect(file.URL).To(Equal("https://pypi.example.com/simple/pkg/pkg-1.0-any.whl"))
		Expect(file.URL).NotTo(ContainSubstring("#"))
		Expect(file.Hashes).To(HaveKeyWithValue("sha256", "abc"))
		Expect(bool(file.Yanked)).To(BeTrue())
	})

	It("resolves absolute hrefs as they are", func() {
		index := parse(`<a href="https://files.example.com/pkg-1.0-any.whl">pkg-1.0-any.whl</a>`)
		Expect(index.Files).To(HaveLen(1))
		Expect(index.Files[0].URL).To(Equal("https://files.example.com/pkg-1.0-any.whl"))
	})

	It("resolves parent relative hrefs against the page URL", func() {
		index := parse(`<a href="../../packages/pkg-1.0-any.whl">pkg-1.0-any.whl</a>`)
		Expect(index.Files).To(HaveLen(1))
		Expect(index.Files[0].URL).To(Equal("https://pypi.example.com/packages/pkg-1.0-any.whl"))
	})

	It("picks up the repository version meta tag", func() {
		index := parse(`<html><head>
			<meta name="pypi:repository-version" content="1.1">
		</head><body></body></html>`)
		Expect(index.Meta.APIVersion).To(Equal("1.1"))
	})

	It("reads the requires-python attribute", func() {
		index := parse(`<a href="pkg-1.0-any.whl" data-requires-python="&gt;=3.8">pkg-1.0-any.whl</a>`)
		Expect(index.Files).To(HaveLen(1))
		Expect(index.Files[0].RequiresPython).To(Equal(">=3.8"))
	})

	It("ignores anchors without an href", func() {
		index := parse(`<a name="top">pkg-1.0-any.whl</a>`)
		Expect(index.Files).To(BeEmpty())
	})

	It("ignores anchors without text content", func() {
		index := parse(`<a href="pkg-1.0-any.whl"></a>`)
		Expect(index.Files).To(BeEmpty())
	})

	It("survives mismatched closing tags", func() {
		index := parse(`<html><body><div><span>
			</div>
			<a href="pkg-1.0-any.whl">pkg-1.0-any.whl</a>
		</body></html>`)
		Expect(index.Files).To(HaveLen(1))
		Expect(index.Files[0].Filename).To(Equal("pkg-1.0-any.whl"))
	})

	It("lists several files in page order", func() {
		index := parse(`<html><body>
			<a href="pkg-1.0-py3-none-any.whl">pkg-1.0-py3-none-any.whl</a><br/>
			<a href="pkg-1.1-py3-none-any.whl">pkg-1.1-py3-none-any.whl</a><br/>
			<a href="pkg-1.2-py3-none-any.whl">pkg-1.2-py3-none-any.whl</a><br/>
		</body></html>`)
		Expect(index.Files).To(HaveLen(3))
		Expect(index.Files[0].Filename).To(Equal("pkg-1.0-py3-none-any.whl"))
		Expect(index.Files[2].Filename).To(Equal("pkg-1.2-py3-none-any.whl"))
	})
})

var _ = Describe("YankedFlag", Label("repository", "simpleindex"), func() {
	type entry struct {
		Yanked repository.YankedFlag `json:"yanked"`
	}

	It("accepts a boolean", func() {
		var e entry
		Expect(json.Unmarshal([]byte(`{"yanked": true}`), &e)).To(BeNil())
		Expect(bool(e.Yanked)).To(BeTrue())
	})

	It("treats a reason string as yanked", func() {
		var e entry
		Expect(json.Unmarshal([]byte(`{"yanked": "broken metadata"}`), &e)).To(BeNil())
		Expect(bool(e.Yanked)).To(BeTrue())
	})

	It("treats an empty reason as not yanked", func() {
		var e entry
		Expect(json.Unmarshal([]byte(`{"yanked": ""}`), &e)).To(BeNil())
		Expect(bool(e.Yanked)).To(BeFalse())
	})
})
