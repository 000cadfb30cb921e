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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/modelrun/modelfetch/cmd/config"
	"github.com/modelrun/modelfetch/pkg/constants"
	fetchError "github.com/modelrun/modelfetch/pkg/error"
	"github.com/modelrun/modelfetch/pkg/repository"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
	"github.com/modelrun/modelfetch/pkg/utils"
)

func NewCheckoutCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "checkout",
		Short: "Fetch a model package into a local checkout directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfigRun(viper.GetString("config-dir"))
			if err != nil {
				return fetchError.NewFromError(err, fetchError.ReadingRunConfig)
			}

			model := &v1.ModelDefinition{}
			model.Repository, _ = cmd.Flags().GetString("repository")
			model.Package, _ = cmd.Flags().GetString("package")
			model.PackageGroup, _ = cmd.Flags().GetString("package-group")
			model.Version, _ = cmd.Flags().GetString("model-version")
			model.Path, _ = cmd.Flags().GetString("path")

			checkoutDir, _ := cmd.Flags().GetString("checkout-dir")
			if checkoutDir == "" {
				checkoutDir, err = os.MkdirTemp("", "modelfetch-")
				if err != nil {
					return fetchError.NewFromError(err, fetchError.CreateDir)
				}
			} else {
				checkoutDir, err = filepath.Abs(checkoutDir)
				if err != nil {
					return fetchError.NewFromError(err, fetchError.CreateDir)
				}
				err = utils.MkdirAll(cfg.Fs, checkoutDir, constants.DirPerm)
				if err != nil {
					return fetchError.NewFromError(err, fetchError.CreateDir)
				}
			}

			manager, err := repository.NewManager(&cfg.Config, &cfg.RuntimeConfig, repository.NewRegistry())
			if err != nil {
				return err
			}

			repo, err := manager.GetRepository(model.Repository)
			if err != nil {
				return err
			}

			packagePath, err := repo.DoCheckout(model, checkoutDir)
			if err != nil {
				return err
			}

			if packagePath == "" {
				cfg.Logger.Info("Nothing to check out, model code is integrated")
				return nil
			}

			fmt.Println(packagePath)
			return nil
		},
	}
	root.AddCommand(c)
	c.Flags().String("repository", "", "Configured repository name to fetch from")
	c.Flags().String("package", "", "Model package name")
	c.Flags().String("package-group", "", "Optional package namespace")
	c.Flags().String("model-version", "", "Exact package version to fetch")
	c.Flags().String("path", "", "Sub-path within the resolved package root")
	c.Flags().String("checkout-dir", "", "Directory to check out into, a temporary one is created if unset")
	_ = c.MarkFlagRequired("repository")
	_ = c.MarkFlagRequired("package")
	_ = c.MarkFlagRequired("model-version")
	return c
}

// register the subcommand into rootCmd
var _ = NewCheckoutCmd(rootCmd)
