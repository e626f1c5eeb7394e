// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUseCase_ExecuteQuery(t *testing.T) {
	t.Parallel()

	t.Run("Success - SQL with positional parameters", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)
		rows := model.NewResult([]map[string]any{{"id": int64(1)}}, nil)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)
		m.service.EXPECT().ExecuteQuery(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Descriptor, q model.Query) (*model.Result, error) {
				assert.Equal(t, "SELECT id FROM orders WHERE id = $1", q.SQL)
				assert.Equal(t, []any{float64(1)}, q.Params)

				return rows, nil
			})

		result, err := uc.ExecuteQuery(context.Background(), dataSourceID, &model.ExecuteQueryInput{
			Query:  json.RawMessage(`"SELECT id FROM orders WHERE id = $1"`),
			Params: []any{float64(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.RowCount)
	})

	t.Run("Success - document query object", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(mongoRecord(), nil)
		m.service.EXPECT().ExecuteQuery(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Descriptor, q model.Query) (*model.Result, error) {
				require.NotNil(t, q.Document)
				assert.Equal(t, "orders", q.Document.Collection)

				return model.NewResult(nil, nil), nil
			})

		result, err := uc.ExecuteQuery(context.Background(), dataSourceID, &model.ExecuteQueryInput{
			Query: json.RawMessage(`{"collection":"orders","operation":"find"}`),
		})
		require.NoError(t, err)
		assert.Zero(t, result.RowCount)
	})

	t.Run("Error - empty query", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)

		_, err := uc.ExecuteQuery(context.Background(), dataSourceID, &model.ExecuteQueryInput{Query: json.RawMessage(`""`)})

		var validation pkg.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, constant.ErrEmptyQuery.Error(), validation.Code)
	})

	t.Run("Error - malformed document query", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(mongoRecord(), nil)

		_, err := uc.ExecuteQuery(context.Background(), dataSourceID, &model.ExecuteQueryInput{Query: json.RawMessage(`{"operation":"find"}`)})

		var validation pkg.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, constant.ErrInvalidDocumentQuery.Error(), validation.Code)
		assert.Contains(t, validation.Message, "collection is required")
	})

	t.Run("Error - query rejected by the database", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)
		rejected := pkg.NewQueryError(constant.EnginePostgreSQL, errors.New(`relation "nope" does not exist`))

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)
		m.service.EXPECT().ExecuteQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, rejected)

		_, err := uc.ExecuteQuery(context.Background(), dataSourceID, &model.ExecuteQueryInput{Query: json.RawMessage(`"SELECT * FROM nope"`)})

		var queryErr pkg.QueryError
		assert.ErrorAs(t, err, &queryErr)
	})

	t.Run("Error - open breaker fast-fails", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)
		refused := pkg.NewConnectionError(constant.EnginePostgreSQL, errors.New("connection refused"))
		input := &model.ExecuteQueryInput{Query: json.RawMessage(`"SELECT 1"`)}
		threshold := int(constant.CircuitBreakerThreshold)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil).Times(threshold + 1)
		m.service.EXPECT().ExecuteQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, refused).Times(threshold)

		for i := 0; i < threshold; i++ {
			_, err := uc.ExecuteQuery(context.Background(), dataSourceID, input)
			require.Error(t, err)
		}

		_, err := uc.ExecuteQuery(context.Background(), dataSourceID, input)

		var unavailable pkg.ServiceUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})
}
