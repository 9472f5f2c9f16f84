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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nscaledev/booker-conformance/pkg/openapi"
	"github.com/nscaledev/booker-conformance/pkg/schema"
)

type schemaOptions struct {
	deviations bool
}

func (o *schemaOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVar(&o.deviations, "deviations", false, "List documented deviations from idiomatic status codes instead.")
}

func newSchemaCommand() *cobra.Command {
	options := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the booking request schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if options.deviations {
				validator, err := openapi.NewValidator(cmd.Context())
				if err != nil {
					return err
				}

				warn := color.New(color.FgYellow)

				for _, deviation := range validator.Deviations() {
					warn.Fprintln(cmd.OutOrStdout(), deviation)
				}

				return nil
			}

			data, err := schema.RequestSchema()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return nil
		},
	}

	options.AddFlags(cmd.Flags())

	return cmd
}
