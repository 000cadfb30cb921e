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
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/modelrun/modelfetch/pkg/constants"
	fetchError "github.com/modelrun/modelfetch/pkg/error"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
	"github.com/modelrun/modelfetch/pkg/utils"
)

// GitRepository checks out a pinned ref from a remote git repository by
// orchestrating the git cli: init, remote add, shallow fetch, hard reset.
type GitRepository struct {
	cfg     *v1.Config
	repoURL *url.URL
}

func NewGitRepository(cfg *v1.Config, repoConfig *v1.RepositoryConfig) (Repository, error) {
	repoURLProp := repoConfig.Property(constants.RepoURLKey)
	if repoURLProp == "" {
		return nil, fetchError.New(
			fmt.Sprintf("missing required property [%s] in git repository config", constants.RepoURLKey),
			fetchError.RepoConfig)
	}

	repoURL, err := url.Parse(repoURLProp)
	if err != nil {
		return nil, fetchError.New(
			fmt.Sprintf("invalid [%s] in git repository config: %s", constants.RepoURLKey, err.Error()),
			fetchError.RepoConfig)
	}

	credentials := ExtractCredentials(repoURL, repoConfig.Properties)

	return &GitRepository{
		cfg:     cfg,
		repoURL: ApplyCredentials(repoURL, credentials),
	}, nil
}

func (g *GitRepository) CheckoutKey(model *v1.ModelDefinition) string {
	return model.Version
}

func (g *GitRepository) PackagePath(model *v1.ModelDefinition, checkoutDir string) string {
	return filepath.Join(checkoutDir, model.Path)
}

func (g *GitRepository) DoCheckout(model *v1.ModelDefinition, checkoutDir string) (string, error) {
	log := g.cfg.Logger

	log.Infof(
		"Git checkout: repo = [%s], group = [%s], package = [%s], version = [%s]",
		model.Repository, model.PackageGroup, model.Package, model.Version)
	log.Infof("Checkout location: [%s]", checkoutDir)

	var baseArgs []string
	if runtime.GOOS == "windows" {
		// Some machines may still be setup without long path support in
		// Windows and/or the git client, so enable core.longpaths on every
		// invocation instead of relying on system config
		baseArgs = append(baseArgs, "-c", "core.longpaths=true")
		g.fixOwnership(checkoutDir)
	}

	gitCmds := [][]string{
		{"init"},
		{"remote", "add", "origin", g.repoURL.String()},
		{"fetch", "--depth=1", "origin", model.Version},
		{"reset", "--hard", "FETCH_HEAD"},
	}

	for _, gitCmd := range gitCmds {
		err := g.runGitCommand(checkoutDir, baseArgs, gitCmd)
		if err != nil {
			msg := fmt.Sprintf("Git checkout failed for %s %s", model.Package, model.Version)
			log.Error(msg)
			return "", fetchError.New(msg, fetchError.CheckoutFailure)
		}
	}

	log.Infof("Git checkout succeeded for %s %s", model.Package, model.Version)

	return g.PackagePath(model, checkoutDir), nil
}

// runGitCommand runs a single git step in the checkout directory, retrying
// once after a short backoff on any failure. Captured output is logged line
// by line once the command finished, stderr at error level only when the
// command ultimately failed.
func (g *GitRepository) runGitCommand(checkoutDir string, baseArgs []string, gitCmd []string) error {
	log := g.cfg.Logger

	safeArgs := make([]string, len(gitCmd))
	for i, arg := range gitCmd {
		safeArgs[i] = utils.LogSafe(arg)
	}
	log.Infof("git %s", strings.Join(safeArgs, " "))

	args := append(append([]string{}, baseArgs...), gitCmd...)

	result, err := g.cfg.Runner.RunInDir(checkoutDir, constants.GitTimeout, constants.GitCommand, args...)
	if err != nil || result.ExitCode != 0 {
		time.Sleep(constants.GitRetryDelay)
		log.Warnf("git %s (retrying)", strings.Join(safeArgs, " "))
		result, err = g.cfg.Runner.RunInDir(checkoutDir, constants.GitTimeout, constants.GitCommand, args...)
	}

	for _, line := range outputLines(result.Stdout) {
		log.Info(line)
	}

	if err == nil && result.ExitCode == 0 {
		for _, line := range outputLines(result.Stderr) {
			log.Info(line)
		}
		return nil
	}

	for _, line := range outputLines(result.Stderr) {
		log.Error(line)
	}

	if err != nil {
		return err
	}
	return fmt.Errorf("git %s exited with status %d", gitCmd[0], result.ExitCode)
}

// fixOwnership claims ownership of the checkout directory so git does not
// refuse to operate on a repo directory owned by another user. Failure is
// logged but does not abort the checkout.
func (g *GitRepository) fixOwnership(checkoutDir string) {
	log := g.cfg.Logger
	log.Infof("Fixing filesystem permissions for [%s]", checkoutDir)

	_, err := g.cfg.Runner.Run("takeown", "/f", checkoutDir)
	if err != nil {
		log.Info("Failed to fix filesystem permissions, this might prevent checkout from succeeding")
	}
}

func outputLines(output []byte) []string {
	trimmed := strings.TrimRight(string(output), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
