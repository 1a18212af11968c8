/*
 * Copyright 2026 The Boardwalk Authors. All rights reserved.
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

package backend

// Config is the configuration for creating a Backend instance.
type Config struct {
	// Hostname is the name of this server instance. If empty, the hostname
	// of the current machine is used.
	Hostname string `yaml:"Hostname"`

	// CapabilityCacheSize is the size of the memoized capability cache.
	CapabilityCacheSize int `yaml:"CapabilityCacheSize"`

	// PurgeChunkSize bounds the width of a single delete operation inside
	// a cascade purge. The mongo store chunks its transactional deletes by
	// this size; the in-memory store applies the whole batch in one txn.
	PurgeChunkSize int `yaml:"PurgeChunkSize"`
}

// Ensure sets the default values for the configuration.
func (c *Config) Ensure() {
	if c.CapabilityCacheSize == 0 {
		c.CapabilityCacheSize = 1000
	}
	if c.PurgeChunkSize == 0 {
		c.PurgeChunkSize = 500
	}
}
