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

package openapi

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date: must be formatted as YYYY-MM-DD")

// DateLayout is how the service formats checkin and checkout dates.
const DateLayout = "2006-01-02"

// Date is a calendar date as exchanged with the booking service.
type Date struct {
	Value time.Time
}

func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(DateLayout, string(text))
	if err != nil {
		return errors.Join(ErrInvalidDate, err)
	}

	*d = Date{
		Value: t,
	}

	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Value.Format(DateLayout)), nil
}

func (d Date) String() string {
	return d.Value.Format(DateLayout)
}
