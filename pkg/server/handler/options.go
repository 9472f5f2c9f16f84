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

package handler

import (
	"github.com/spf13/pflag"
)

// Options allows behaviour to be defined on the CLI.
type Options struct {
	// Username is the administrator account name.
	Username string

	// Password is the administrator password.
	Password string
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Username, "admin-username", "admin", "Administrator user name.")
	f.StringVar(&o.Password, "admin-password", "password123", "Administrator password.")
}
