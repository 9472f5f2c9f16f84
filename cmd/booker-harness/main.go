/*
Copyright 2026 Nscale.

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

package main

import (
	goflag "flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/nscaledev/booker-conformance/pkg/constants"
	"github.com/nscaledev/booker-conformance/test/api"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

func newRootCommand(zapOptions *zap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "booker-harness",
		Short:         "Booking service conformance tooling",
		Long:          "Generate booking fixtures, seed a running booking service, export schemas and run an in-memory stand-in.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLogger(zap.New(zap.UseFlagOptions(zapOptions)))

			logger := log.Log.WithName("init")
			logger.Info("harness starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision, "command", cmd.Name())

			cmd.SetContext(log.IntoContext(cmd.Context(), log.Log.WithName(cmd.Name())))
		},
	}

	goFlags := goflag.NewFlagSet("", goflag.ContinueOnError)
	zapOptions.BindFlags(goFlags)

	cmd.PersistentFlags().AddGoFlagSet(goFlags)

	cmd.AddCommand(
		newFixturesCommand(),
		newSeedCommand(),
		newSchemaCommand(),
		newServeCommand(),
	)

	return cmd
}

// logrLogger adapts a structured logger for the API client's diagnostics.
func logrLogger(logger logr.Logger) api.Logger {
	return api.LoggerFunc(func(format string, args ...any) {
		logger.V(1).Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	})
}

func main() {
	zapOptions := zap.Options{}

	if err := newRootCommand(&zapOptions).ExecuteContext(signals.SetupSignalHandler()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
