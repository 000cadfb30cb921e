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

package config

import (
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/modelrun/modelfetch/pkg/config"
	v1 "github.com/modelrun/modelfetch/pkg/types/v1"
)

var decodeHook = viper.DecodeHook(
	mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	),
)

// ReadConfigRun builds the full run configuration: the ambient collaborators
// plus the repository entries read from config.yaml in the config dir.
// Environment variables prefixed with MODELFETCH override file values.
func ReadConfigRun(configDir string, opts ...config.GenericOptions) (*v1.RunConfig, error) {
	cfg := config.NewRunConfig(opts...)

	configLogger(cfg.Logger)

	viper.AddConfigPath(configDir)
	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yaml")
	// If a config file is found, read it in.
	_ = viper.MergeInConfig()

	viper.SetEnvPrefix("MODELFETCH")
	viper.AutomaticEnv()

	err := viper.Unmarshal(cfg, decodeHook)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func configLogger(log v1.Logger) {
	if viper.GetBool("debug") {
		log.SetLevel(v1.DebugLevel())
	}

	// Set formatter so both file and stdout format are equal
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableColors:    false,
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	logfile := viper.GetString("logfile")
	if logfile != "" {
		o, err := os.OpenFile(logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, os.ModePerm)
		if err != nil {
			log.Errorf("Could not open %s for logging to file: %s", logfile, err.Error())
		} else if viper.GetBool("quiet") { // if quiet is set, only set the log to the file
			log.SetOutput(o)
		} else { // else set it to both stdout and the file
			log.SetOutput(io.MultiWriter(os.Stdout, o))
		}
	} else if viper.GetBool("quiet") { // quiet is enabled so discard all logging
		log.SetOutput(io.Discard)
	} else { // default to stdout
		log.SetOutput(os.Stdout)
	}
}
