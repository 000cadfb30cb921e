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
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/modelrun/modelfetch/pkg/constants"
)

// PackageIndex mirrors the PEP-691 project detail schema, so candidate
// selection does not care whether the listing came from a JSON or an HTML
// simple index.
type PackageIndex struct {
	Meta  IndexMeta     `json:"meta"`
	Name  string        `json:"name"`
	Files []PackageFile `json:"files"`
}

type IndexMeta struct {
	APIVersion string `json:"api-version"`
}

type PackageFile struct {
	Filename       string            `json:"filename"`
	URL            string            `json:"url"`
	Hashes         map[string]string `json:"hashes"`
	Yanked         YankedFlag        `json:"yanked"`
	RequiresPython string            `json:"requires-python,omitempty"`
}

// YankedFlag handles the PEP-592 yanked field, which is either a boolean or
// a string holding the yank reason. Any reason string counts as yanked.
type YankedFlag bool

func (y *YankedFlag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*y = YankedFlag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*y = s != ""
	return nil
}

type indexElement struct {
	tag   string
	attrs []html.Attribute
}

// ParseSimpleHTML extracts a package file listing from a legacy HTML simple
// index page. It keeps a stack of open tags and emits one file record per
// anchor that carries both an href and text content, recovering from
// mismatched closing tags on a best effort basis.
func ParseSimpleHTML(pageURL string, packageName string, body io.Reader) (*PackageIndex, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	index := &PackageIndex{Name: packageName, Files: []PackageFile{}}

	var stack []indexElement
	var data string

	tokenizer := html.NewTokenizer(body)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return index, nil
			}
			return nil, tokenizer.Err()

		case html.StartTagToken:
			token := tokenizer.Token()
			stack = append(stack, indexElement{tag: token.Data, attrs: token.Attr})
			data = ""
			recordMeta(index, token)

		case html.SelfClosingTagToken:
			token := tokenizer.Token()
			data = ""
			recordMeta(index, token)

		case html.TextToken:
			data = strings.TrimSpace(string(tokenizer.Text()))

		case html.EndTagToken:
			token := tokenizer.Token()
			if len(stack) == 0 {
				continue
			}

			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if token.Data == "a" && top.tag == "a" && data != "" {
				recordLink(index, base, data, top.attrs)
			}

			// pop until the matching open tag is found or the stack empties
			for top.tag != token.Data && len(stack) > 0 {
				top = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func recordMeta(index *PackageIndex, token html.Token) {
	if token.Data != "meta" {
		return
	}
	if name, ok := attrValue(token.Attr, "name"); !ok || name != constants.PipRepositoryVersionMeta {
		return
	}
	if content, ok := attrValue(token.Attr, "content"); ok {
		index.Meta.APIVersion = content
	}
}

func recordLink(index *PackageIndex, base *url.URL, filename string, attrs []html.Attribute) {
	href, ok := attrValue(attrs, "href")
	if !ok {
		return
	}

	// a trailing "#algo=hexdigest" fragment is hash metadata, not URL
	hashes := map[string]string{}
	if sep := strings.Index(href, "#"); sep >= 0 {
		hashInfo := strings.Split(href[sep+1:], "=")
		href = href[:sep]
		if len(hashInfo) == 2 {
			hashes[hashInfo[0]] = hashInfo[1]
		}
	}

	// the href can be absolute or relative to the index page
	fileURL := href
	if ref, err := url.Parse(href); err == nil {
		fileURL = base.ResolveReference(ref).String()
	}

	_, yanked := attrValue(attrs, "data-yanked")
	requiresPython, _ := attrValue(attrs, "data-requires-python")

	index.Files = append(index.Files, PackageFile{
		Filename:       filename,
		URL:            fileURL,
		Hashes:         hashes,
		Yanked:         YankedFlag(yanked),
		RequiresPython: requiresPython,
	})
}

func attrValue(attrs []html.Attribute, key string) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
