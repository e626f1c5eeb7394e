// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/LerianStudio/datagage/components/manager/internal/bootstrap"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

// @title			Datagage
// @version		1.0.0
// @description	Connection testing, query execution and schema introspection for registered data sources.
// @host			localhost:4005
// @BasePath		/
func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitServers()
	if err != nil {
		// The structured logger is created inside InitServers.
		fmt.Fprintf(os.Stderr, "Failed to initialize manager: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
