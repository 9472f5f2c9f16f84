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
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nscaledev/booker-conformance/pkg/constants"
	"github.com/nscaledev/booker-conformance/test/api"

	"k8s.io/apimachinery/pkg/util/wait"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

type seedOptions struct {
	host         string
	port         int
	count        int
	seed         uint64
	pollInterval time.Duration
	waitTimeout  time.Duration
}

func (o *seedOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.host, "host", "", "Service host, defaults to BOOKER_HOST.")
	f.IntVar(&o.port, "port", 0, "Service port, defaults to BOOKER_PORT.")
	f.IntVar(&o.count, "count", 10, "Number of bookings to create.")
	f.Uint64Var(&o.seed, "seed", 0, "Random seed, 0 picks one at random.")
	f.DurationVar(&o.pollInterval, "poll-interval", constants.DefaultPollInterval, "How often to probe the service while waiting for it.")
	f.DurationVar(&o.waitTimeout, "wait-timeout", constants.DefaultWaitTimeout, "How long to wait for the service to answer.")
}

func (o *seedOptions) config() (*api.TestConfig, error) {
	config, err := api.LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if o.host != "" {
		config.Host = o.host
	}

	if o.port != 0 {
		config.Port = o.port
	}

	return config, nil
}

// waitForService polls the health check until it answers.
func waitForService(ctx context.Context, client *api.APIClient, interval, timeout time.Duration) error {
	log := log.FromContext(ctx)

	return wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		resp, err := client.Do(ctx, client.Specs().RequestSpec(), api.Call{
			Method: http.MethodGet,
			Path:   client.Endpoints().Ping(),
		})
		if err != nil {
			log.Info("service not ready", "error", err.Error())
			return false, nil
		}

		return resp.StatusCode == http.StatusCreated, nil
	})
}

func runSeed(ctx context.Context, cmd *cobra.Command, options *seedOptions) error {
	log := log.FromContext(ctx)

	config, err := options.config()
	if err != nil {
		return err
	}

	specs, err := api.NewSpecs(config.Address())
	if err != nil {
		return err
	}

	client := api.NewAPIClient(config, specs, api.WithLogger(logrLogger(log)))

	if err := waitForService(ctx, client, options.pollInterval, options.waitTimeout); err != nil {
		return fmt.Errorf("waiting for %s: %w", specs.Address(), err)
	}

	log.Info("service ready", "address", specs.Address().String())

	ok := color.New(color.FgGreen)

	for _, b := range generate(options.count, options.seed) {
		id, err := client.CreateBooking(ctx, b)
		if err != nil {
			return err
		}

		ok.Fprintf(cmd.OutOrStdout(), "created booking %d for %s %s\n", id, *b.Firstname, *b.Lastname)
	}

	return nil
}

func newSeedCommand() *cobra.Command {
	options := &seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Wait for a booking service and populate it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cmd, options)
		},
	}

	options.AddFlags(cmd.Flags())

	return cmd
}
