// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package in

import (
	"context"
	"time"

	"github.com/LerianStudio/datagage/pkg/model"
	"github.com/LerianStudio/datagage/pkg/net/http"
	pkgRedis "github.com/LerianStudio/datagage/pkg/redis"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
	commonsHttp "github.com/LerianStudio/lib-commons/v3/commons/net/http"
	"github.com/LerianStudio/lib-commons/v3/commons/opentelemetry"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

const readinessCheckTimeout = 2 * time.Second

// MongoProvider hands out the record store client. *libMongo.MongoConnection satisfies it.
type MongoProvider interface {
	GetDB(ctx context.Context) (*mongo.Client, error)
}

// ReadinessDeps holds the connections checked by /ready.
type ReadinessDeps struct {
	MongoConnection MongoProvider
	RedisConnection pkgRedis.ClientProvider
}

// RouteConfig carries the HTTP middleware settings.
type RouteConfig struct {
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// NewRoutes creates a new fiber router with the specified handlers and middleware.
func NewRoutes(lg log.Logger, tl *opentelemetry.Telemetry, dataSourceHandler *DataSourceHandler, cfg RouteConfig, deps *ReadinessDeps) *fiber.App {
	f := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return commonsHttp.HandleFiberError(ctx, err)
		},
	})
	tlMid := commonsHttp.NewTelemetryMiddleware(tl)

	f.Use(RecoverMiddleware())
	f.Use(tlMid.WithTelemetry(tl))
	f.Use(SecurityHeaders())
	f.Use(CORSMiddleware(cfg.CORS))
	f.Use(commonsHttp.WithHTTPLogging(commonsHttp.WithCustomLogger(lg)))
	f.Use(RateLimiterMiddleware(cfg.RateLimit))

	registerDataSourceRoutes(f, dataSourceHandler)

	// Health
	f.Get("/health", commonsHttp.Ping)

	// Readiness
	f.Get("/ready", readinessHandler(deps))

	// Version
	f.Get("/version", commonsHttp.Version)

	f.Use(tlMid.EndTracingSpans)

	return f
}

func registerDataSourceRoutes(f fiber.Router, h *DataSourceHandler) {
	f.Post("/v1/data-sources/test", h.TestConnection)
	f.Post("/v1/data-sources", http.WithBody(new(model.CreateDataSourceInput), h.CreateDataSource))
	f.Get("/v1/data-sources", h.GetAllDataSources)
	f.Get("/v1/data-sources/:id", ParsePathParametersUUID, h.GetDataSourceByID)
	f.Patch("/v1/data-sources/:id", ParsePathParametersUUID, http.WithBody(new(model.UpdateDataSourceInput), h.UpdateDataSourceByID))
	f.Delete("/v1/data-sources/:id", ParsePathParametersUUID, h.DeleteDataSourceByID)
	f.Post("/v1/data-sources/:id/test", ParsePathParametersUUID, h.TestDataSourceByID)
	f.Post("/v1/data-sources/:id/query", ParsePathParametersUUID, http.WithBody(new(model.ExecuteQueryInput), h.ExecuteQuery))
	f.Get("/v1/data-sources/:id/schema", ParsePathParametersUUID, h.GetDataSourceSchema)
	f.Post("/v1/data-sources/:id/schema/refresh", ParsePathParametersUUID, h.RequestSchemaRefresh)
}

type dependencyResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// readinessHandler answers 200 when every dependency responds and 503 otherwise.
func readinessHandler(deps *ReadinessDeps) fiber.Handler {
	if deps == nil {
		deps = &ReadinessDeps{}
	}

	return func(c *fiber.Ctx) error {
		results := map[string]*dependencyResult{
			"mongodb": checkMongoDB(deps.MongoConnection),
			"redis":   checkRedis(deps.RedisConnection),
		}

		httpStatus := fiber.StatusOK
		overallStatus := "ready"

		for _, result := range results {
			if result.Status != "ready" {
				httpStatus = fiber.StatusServiceUnavailable
				overallStatus = "not_ready"

				break
			}
		}

		return commonsHttp.JSONResponse(c, httpStatus, fiber.Map{
			"status":       overallStatus,
			"dependencies": results,
		})
	}
}

func checkMongoDB(conn MongoProvider) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	client, err := conn.GetDB(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get connection"}
	}

	if err = client.Ping(ctx, nil); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}

func checkRedis(conn pkgRedis.ClientProvider) *dependencyResult {
	if conn == nil {
		return &dependencyResult{Status: "not_ready", Message: "connection not configured"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), readinessCheckTimeout)
	defer cancel()

	client, err := conn.GetClient(ctx)
	if err != nil {
		return &dependencyResult{Status: "not_ready", Message: "failed to get client"}
	}

	if err = client.Ping(ctx).Err(); err != nil {
		return &dependencyResult{Status: "not_ready", Message: "ping failed"}
	}

	return &dependencyResult{Status: "ready"}
}
