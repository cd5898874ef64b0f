/*
 * Copyright 2024 The asyncflux Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package asyncflux

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asyncflux.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint: http://influxdb:8086
username: admin
password: secret
timeout: 5s
`), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, &Config{
		Endpoint: "http://influxdb:8086",
		Username: "admin",
		Password: "secret",
		Timeout:  5 * time.Second,
	}, config)
	require.NotNil(t, config.logger())
}

func TestParseConfigRequiresEndpoint(t *testing.T) {
	_, err := ParseConfig([]byte("username: admin\n"))
	require.Error(t, err)

	_, err = ParseConfig([]byte("endpoint: [\n"))
	require.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
