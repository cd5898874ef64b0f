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

// Series describes a series as listed by SHOW SERIES.
//
// InfluxDB 1.x answers SHOW SERIES with a single unnamed series whose "key"
// column holds every series key, e.g. "cpu,host=a". That answer yields one
// Series named "results" with the keys in Tags.
type Series struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}
