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
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/modelrun/modelfetch/pkg/constants"
	fetchError "github.com/modelrun/modelfetch/pkg/error"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
	"github.com/modelrun/modelfetch/pkg/utils"
)

// PyPiRepository resolves model packages against a PyPI style package
// index, either through the PEP-691 simple index protocol (JSON with a
// legacy HTML fallback) or through the provider's JSON metadata endpoint.
// The selected wheel is downloaded and unpacked into the checkout dir.
type PyPiRepository struct {
	cfg        *v1.Config
	properties map[string]string

	pipIndex        *url.URL
	pipIndexURL     *url.URL
	pipSimpleFormat string
}

type packageMatch struct {
	filename string
	url      string
	target   string
}

func NewPyPiRepository(cfg *v1.Config, repoConfig *v1.RepositoryConfig) (Repository, error) {
	pipIndexProp := repoConfig.Property(constants.PipIndexKey)
	pipIndexURLProp := repoConfig.Property(constants.PipIndexURLKey)

	if pipIndexProp == "" && pipIndexURLProp == "" {
		return nil, fetchError.New(
			fmt.Sprintf("neither [%s] nor [%s] is set in PyPI repository config",
				constants.PipIndexKey, constants.PipIndexURLKey),
			fetchError.RepoConfig)
	}

	repo := &PyPiRepository{
		cfg:             cfg,
		properties:      repoConfig.Properties,
		pipSimpleFormat: repoConfig.Property(constants.PipSimpleFormatKey),
	}

	var err error
	if pipIndexProp != "" {
		repo.pipIndex, err = url.Parse(pipIndexProp)
		if err != nil {
			return nil, fetchError.New(
				fmt.Sprintf("invalid [%s] in PyPI repository config: %s", constants.PipIndexKey, err.Error()),
				fetchError.RepoConfig)
		}
	}
	if pipIndexURLProp != "" {
		repo.pipIndexURL, err = url.Parse(pipIndexURLProp)
		if err != nil {
			return nil, fetchError.New(
				fmt.Sprintf("invalid [%s] in PyPI repository config: %s", constants.PipIndexURLKey, err.Error()),
				fetchError.RepoConfig)
		}
	}

	return repo, nil
}

func (p *PyPiRepository) CheckoutKey(model *v1.ModelDefinition) string {
	return model.Version
}

func (p *PyPiRepository) PackagePath(_ *v1.ModelDefinition, checkoutDir string) string {
	// wheels unpack straight into the checkout dir, there is no sub-path
	return checkoutDir
}

func (p *PyPiRepository) DoCheckout(model *v1.ModelDefinition, checkoutDir string) (string, error) {
	log := p.cfg.Logger

	log.Infof(
		"PyPI checkout: repo = [%s], package = [%s], version = [%s]",
		model.Repository, model.Package, model.Version)
	log.Infof("Checkout location: [%s]", checkoutDir)

	var filename string
	var packageURL *url.URL
	var err error

	if p.pipIndexURL != nil {
		filename, packageURL, err = p.simpleQuery(model)
	} else {
		filename, packageURL, err = p.jsonQuery(model)
	}
	if err != nil {
		return "", err
	}

	log.Infof("Downloading [%s]", filename)

	archive := filepath.Join(checkoutDir, filename)
	start := time.Now()

	err = p.cfg.Client.GetURL(log, packageURL.String(), archive)
	if err != nil {
		msg := fmt.Sprintf("package download failed for %s %s: %s", model.Package, model.Version, err.Error())
		log.Error(msg)
		return "", fetchError.New(msg, fetchError.CheckoutFailure)
	}

	if stat, statErr := p.cfg.Fs.Stat(archive); statErr == nil {
		log.Infof("Downloaded [%.1f] KB in [%.1f] seconds",
			float64(stat.Size())/1024, time.Since(start).Seconds())
	}

	extracted, err := utils.ExtractZip(p.cfg.Fs, archive, checkoutDir)
	if err != nil {
		msg := fmt.Sprintf("failed unpacking %s %s: %s", model.Package, model.Version, err.Error())
		log.Error(msg)
		return "", fetchError.New(msg, fetchError.ExtractArchive)
	}
	_ = p.cfg.Fs.Remove(archive)

	log.Infof("Unpacked [%d] files", extracted)
	log.Infof("PyPI checkout succeeded for %s %s", model.Package, model.Version)

	return p.PackagePath(model, checkoutDir), nil
}

// simpleQuery resolves the wheel for a model through the PEP-691 simple
// index, negotiating JSON and falling back to HTML parsing when the server
// answers with the legacy format.
func (p *PyPiRepository) simpleQuery(model *v1.ModelDefinition) (string, *url.URL, error) {
	log := p.cfg.Logger

	credentials := ExtractCredentials(p.pipIndexURL, p.properties)

	log.Infof("Query package: [%s]", model.Package)

	resp, err := p.packageQuery(
		p.pipIndexURL, path.Join(p.pipIndexURL.Path, model.Package)+"/",
		p.simpleContentType(), credentials, model)
	if err != nil {
		return "", nil, err
	}

	var index *PackageIndex

	switch contentType(resp) {
	case constants.PipSimpleTypeJSON:
		index = &PackageIndex{}
		err = json.Unmarshal(resp.Body, index)
		if err != nil {
			msg := fmt.Sprintf("invalid response from model repository for %s %s: %s",
				model.Package, model.Version, err.Error())
			log.Error(msg)
			return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
		}
	case constants.PipSimpleTypeHTML:
		index, err = ParseSimpleHTML(resp.URL, model.Package, bytes.NewReader(resp.Body))
		if err != nil {
			msg := fmt.Sprintf("invalid response from model repository for %s %s: %s",
				model.Package, model.Version, err.Error())
			log.Error(msg)
			return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
		}
	default:
		msg := fmt.Sprintf("invalid response from package repository: content type = [%s]", resp.ContentType)
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	filename, rawURL, err := p.selectWheel(index, model)
	if err != nil {
		return "", nil, err
	}

	packageURL, err := url.Parse(rawURL)
	if err != nil {
		msg := fmt.Sprintf("invalid package url in index response for %s %s: %s",
			model.Package, model.Version, err.Error())
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	// index and file storage hosts may differ, re-apply credentials
	return filename, ApplyCredentials(packageURL, credentials), nil
}

// selectWheel picks the unique non-yanked wheel built for the requested
// package version. Platform target disambiguation is not attempted, several
// candidate targets is an error.
func (p *PyPiRepository) selectWheel(index *PackageIndex, model *v1.ModelDefinition) (string, string, error) {
	log := p.cfg.Logger

	packageName := index.Name
	if packageName == "" {
		packageName = model.Package
	}

	// dash is replaced by underscore in wheel names
	namePattern := regexp.QuoteMeta(strings.ReplaceAll(packageName, "-", "_"))
	versionPattern := regexp.QuoteMeta(model.Version)
	filePattern, err := regexp.Compile(fmt.Sprintf(`^%s-%s-(.*)\.whl`, namePattern, versionPattern))
	if err != nil {
		return "", "", fetchError.NewFromError(err, fetchError.CheckoutFailure)
	}

	var matches []packageMatch
	for _, file := range index.Files {
		if file.Yanked {
			continue
		}
		if m := filePattern.FindStringSubmatch(file.Filename); m != nil {
			matches = append(matches, packageMatch{filename: file.Filename, url: file.URL, target: m[1]})
		}
	}

	if len(matches) == 0 {
		msg := fmt.Sprintf("no package found for [%s] version [%s]", packageName, model.Version)
		log.Error(msg)
		return "", "", fetchError.New(msg, fetchError.CheckoutFailure)
	}

	if len(matches) > 1 {
		targets := make([]string, len(matches))
		for i, m := range matches {
			targets[i] = m.target
		}
		msg := fmt.Sprintf("multiple packages found for [%s] version [%s] (targets: %s)",
			packageName, model.Version, strings.Join(targets, ", "))
		log.Error(msg)
		return "", "", fetchError.New(msg, fetchError.CheckoutFailure)
	}

	log.Infof("Found package [%s] version [%s], target = [%s]", packageName, model.Version, matches[0].target)

	return matches[0].filename, matches[0].url, nil
}

// jsonQuery resolves the wheel through the provider's package metadata
// endpoint, selecting from its declared urls list.
func (p *PyPiRepository) jsonQuery(model *v1.ModelDefinition) (string, *url.URL, error) {
	log := p.cfg.Logger

	credentials := ExtractCredentials(p.pipIndex, p.properties)

	log.Infof("Query package: [%s], version = [%s]", model.Package, model.Version)

	resp, err := p.packageQuery(
		p.pipIndex, path.Join(p.pipIndex.Path, model.Package, model.Version, "json"),
		"application/json", credentials, model)
	if err != nil {
		return "", nil, err
	}

	var metadata struct {
		Info struct {
			Summary string `json:"summary"`
		} `json:"info"`
		Urls []struct {
			PackageType string `json:"packagetype"`
			Filename    string `json:"filename"`
			URL         string `json:"url"`
		} `json:"urls"`
	}

	err = json.Unmarshal(resp.Body, &metadata)
	if err != nil {
		msg := fmt.Sprintf("invalid response from model repository for %s %s: %s",
			model.Package, model.Version, err.Error())
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	summary := metadata.Info.Summary
	if summary == "" {
		summary = "(summary not available)"
	}
	log.Infof("Package summary: %s", summary)

	var wheels []packageMatch
	for _, entry := range metadata.Urls {
		if entry.PackageType == "bdist_wheel" {
			wheels = append(wheels, packageMatch{filename: entry.Filename, url: entry.URL})
		}
	}

	if len(wheels) == 0 {
		msg := fmt.Sprintf("no compatible package found for [%s] version [%s]", model.Package, model.Version)
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	if len(wheels) > 1 {
		msg := fmt.Sprintf(
			"multiple compatible packages found for [%s] version [%s]"+
				" (specialized distributions are not supported)", model.Package, model.Version)
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	packageURL, err := url.Parse(wheels[0].url)
	if err != nil {
		msg := fmt.Sprintf("invalid package url in metadata response for %s %s: %s",
			model.Package, model.Version, err.Error())
		log.Error(msg)
		return "", nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	return wheels[0].filename, ApplyCredentials(packageURL, credentials), nil
}

// packageQuery GETs an index endpoint with credentials applied and fails on
// any non-2xx response.
func (p *PyPiRepository) packageQuery(
	root *url.URL, packagePath string, accept string,
	credentials string, model *v1.ModelDefinition) (*v1.HTTPResponse, error) {
	log := p.cfg.Logger

	queryURL := *ApplyCredentials(root, credentials)
	queryURL.Path = packagePath

	resp, err := p.cfg.Client.Get(log, queryURL.String(), accept)
	if err != nil {
		msg := fmt.Sprintf("package lookup failed for %s %s: %s", model.Package, model.Version, err.Error())
		log.Error(msg)
		return nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("package lookup failed for %s %s: [%d] %s",
			model.Package, model.Version, resp.StatusCode, resp.Status)
		log.Error(msg)
		return nil, fetchError.New(msg, fetchError.CheckoutFailure)
	}

	return resp, nil
}

// simpleContentType maps the configured format hint to the Accept header
// value, falling back to JSON for unknown hints.
func (p *PyPiRepository) simpleContentType() string {
	switch p.pipSimpleFormat {
	case constants.PipSimpleFormatJSON, "":
		return constants.PipSimpleTypeJSON
	case constants.PipSimpleFormatHTML:
		return constants.PipSimpleTypeHTML
	default:
		p.cfg.Logger.Warnf("Unknown PyPI format [%s], using [%s]",
			p.pipSimpleFormat, constants.PipSimpleFormatJSON)
		return constants.PipSimpleTypeJSON
	}
}

func contentType(resp *v1.HTTPResponse) string {
	mediaType, _, err := mime.ParseMediaType(resp.ContentType)
	if err != nil {
		return resp.ContentType
	}
	return mediaType
}
