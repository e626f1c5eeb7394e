// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/LerianStudio/datagage/components/worker/internal/bootstrap"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitWorker()
	if err != nil {
		// The structured logger is created inside InitWorker.
		fmt.Fprintf(os.Stderr, "Failed to initialize worker: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
