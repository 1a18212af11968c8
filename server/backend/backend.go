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

// Package backend provides the backend implementation of Boardwalk. This
// package is responsible for managing the database and other resources
// required to serve boards.
package backend

import (
	"fmt"
	"os"

	"github.com/boardwalk-team/boardwalk/pkg/errors"
	"github.com/boardwalk-team/boardwalk/server/authz"
	"github.com/boardwalk-team/boardwalk/server/backend/database"
	memdb "github.com/boardwalk-team/boardwalk/server/backend/database/memory"
	"github.com/boardwalk-team/boardwalk/server/backend/database/mongo"
	"github.com/boardwalk-team/boardwalk/server/logging"
	"github.com/boardwalk-team/boardwalk/server/profiling/prometheus"
)

// Backend manages Boardwalk's backend such as Database and the capability
// resolver.
type Backend struct {
	Config *Config

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database
	// Resolver memoizes capability derivations.
	Resolver *authz.Resolver
}

// New creates a new instance of Backend. If the MongoDB configuration is
// given, a MongoDB instance backs it. Otherwise, the in-memory database is
// used.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	metrics *prometheus.Metrics,
) (*Backend, error) {
	conf.Ensure()

	hostname := conf.Hostname
	if hostname == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("os.Hostname: %w", err)
		}
		conf.Hostname = hostname
	}

	var db database.Database
	if mongoConf != nil {
		if mongoConf.PurgeChunkSize == 0 {
			mongoConf.PurgeChunkSize = conf.PurgeChunkSize
		}
		cli, err := mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
		cli.SetFallbackObserver(metrics.AddSortFallback)
		db = cli
	} else {
		mdb, err := memdb.New()
		if err != nil {
			return nil, err
		}
		mdb.SetFallbackObserver(metrics.AddSortFallback)
		db = mdb
	}

	resolver, err := authz.NewResolver(conf.CapabilityCacheSize)
	if err != nil {
		return nil, err
	}

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof(
		"backend created: db: %s",
		dbInfo,
	)

	return &Backend{
		Config:   conf,
		Metrics:  metrics,
		DB:       db,
		Resolver: resolver,
	}, nil
}

// ObserveOperation counts the result of a service operation. The status
// label is the error code of the failure, or "ok".
func (b *Backend) ObserveOperation(service, operation string, err error) {
	status := "ok"
	if err != nil {
		status = errors.CodeOf(err)
		if status == "" {
			status = "error"
		}
	}

	b.Metrics.AddOperation(service, operation, status)
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	if err := b.DB.Close(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend stopped: db closed")

	return nil
}
