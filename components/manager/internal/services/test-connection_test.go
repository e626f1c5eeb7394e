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

func TestUseCase_TestConnection(t *testing.T) {
	t.Parallel()

	uc, m := newTestUseCase(t)

	descriptor := model.Descriptor{Type: model.EngineType("oracle"), Host: "h", Database: "d"}
	expected := model.ConnectionResult{Message: constant.UnsupportedEngineMessage + "oracle"}

	m.service.EXPECT().TestConnection(gomock.Any(), descriptor).Return(expected)

	assert.Equal(t, expected, uc.TestConnection(context.Background(), descriptor))
}

func TestUseCase_TestDataSourceByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result model.ConnectionResult
		status string
	}{
		{
			name:   "reachable data source is marked connected",
			result: model.ConnectionResult{Success: true, Message: constant.ConnectionSuccessMessage},
			status: constant.DataSourceStatusConnected,
		},
		{
			name:   "unreachable data source is marked failed",
			result: model.ConnectionResult{Message: constant.ConnectionFailedPrefix + "refused"},
			status: constant.DataSourceStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc, m := newTestUseCase(t)

			m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(postgresRecord(), nil)
			m.service.EXPECT().TestConnection(gomock.Any(), postgresRecord().Descriptor()).Return(tt.result)
			m.repo.EXPECT().UpdateStatus(gomock.Any(), dataSourceID, tt.status, nil).Return(errors.New("ignored"))

			result, err := uc.TestDataSourceByID(context.Background(), dataSourceID)
			require.NoError(t, err)
			assert.Equal(t, tt.result, *result)
		})
	}

	t.Run("Error - not found", func(t *testing.T) {
		t.Parallel()

		uc, m := newTestUseCase(t)

		m.repo.EXPECT().FindByID(gomock.Any(), dataSourceID).Return(nil, notFound())

		_, err := uc.TestDataSourceByID(context.Background(), dataSourceID)
		assert.Error(t, err)
	})
}
