// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUseCase_RequestSchemaRefresh(t *testing.T) {
	t.Parallel()

	t.Run("Success - publishes to the refresh exchange", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)
		messageID := "msg-1"

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)
		m.producer.EXPECT().ProducerDefault(gomock.Any(), constant.SchemaRefreshExchange, constant.SchemaRefreshRoutingKey, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, message model.SchemaRefreshMessage) (*string, error) {
				assert.Equal(t, dataSourceID, message.DataSourceID)
				assert.False(t, message.RequestedAt.IsZero())

				return &messageID, nil
			})

		message, err := uc.RequestSchemaRefresh(context.Background(), dataSourceID)
		require.NoError(t, err)
		assert.Equal(t, dataSourceID, message.DataSourceID)
	})

	t.Run("Error - unknown data source is not published", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(nil, notFound())

		_, err := uc.RequestSchemaRefresh(context.Background(), dataSourceID)
		assert.Error(t, err)
	})

	t.Run("Error - broker failure", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)
		m.producer.EXPECT().ProducerDefault(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("channel closed"))

		_, err := uc.RequestSchemaRefresh(context.Background(), dataSourceID)
		assert.EqualError(t, err, "channel closed")
	})
}
