// Copyright 2026 The EdgeRules Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimvydasb/edgerules-sub001/value"
)

func TestParseDate(t *testing.T) {
	d, err := value.ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", d.String())

	_, err = value.ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestParseTimeWithAndWithoutFraction(t *testing.T) {
	tm, err := value.ParseTime("08:30:00")
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", tm.String())

	tm2, err := value.ParseTime("08:30:00.250")
	require.NoError(t, err)
	assert.Equal(t, "08:30:00.250", tm2.String())
}

func TestParseDateTimeBothSeparators(t *testing.T) {
	a, err := value.ParseDateTime("2024-03-15 08:30:00")
	require.NoError(t, err)
	b, err := value.ParseDateTime("2024-03-15T08:30:00")
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestParseDurationRejectsYearMonth(t *testing.T) {
	_, err := value.ParseDuration("P1Y")
	assert.Error(t, err)
}

func TestParsePeriodRejectsTimeDesignator(t *testing.T) {
	_, err := value.ParsePeriod("P1YT1H")
	assert.Error(t, err)
}

func TestParseDurationMissingPPrefix(t *testing.T) {
	_, err := value.ParseDuration("1D")
	assert.Error(t, err)
}
