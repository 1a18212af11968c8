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

// Package server provides the Boardwalk server which ties the backend and
// the profiling server together.
package server

import (
	gosync "sync"

	"github.com/boardwalk-team/boardwalk/server/backend"
	"github.com/boardwalk-team/boardwalk/server/profiling"
	"github.com/boardwalk-team/boardwalk/server/profiling/prometheus"
)

// Boardwalk is a server instance. It owns the backend the board services
// run against and the profiling server exposing metrics and pprof.
type Boardwalk struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Boardwalk.
func New(conf *Config) (*Boardwalk, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, conf.Mongo, metrics)
	if err != nil {
		return nil, err
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Boardwalk{
		conf:            conf,
		backend:         be,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Backend returns the backend of this server.
func (r *Boardwalk) Backend() *backend.Backend {
	return r.backend
}

// Start starts the server.
func (r *Boardwalk) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.profilingServer != nil {
		return r.profilingServer.Start()
	}

	return nil
}

// Shutdown shuts down this Boardwalk server.
func (r *Boardwalk) Shutdown(graceful bool) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.shutdown {
		return nil
	}

	if r.profilingServer != nil {
		r.profilingServer.Shutdown(graceful)
	}

	if err := r.backend.Shutdown(); err != nil {
		return err
	}

	close(r.shutdownCh)
	r.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (r *Boardwalk) ShutdownCh() <-chan struct{} {
	return r.shutdownCh
}
