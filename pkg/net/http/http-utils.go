// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package http

import (
	"strconv"
	"strings"

	"github.com/LerianStudio/datagage/pkg"
	"github.com/LerianStudio/datagage/pkg/constant"
	"github.com/LerianStudio/datagage/pkg/model"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"
)

// QueryHeader entity from query parameter from get apis
type QueryHeader struct {
	Type      string
	Name      string
	Status    string
	Limit     int
	Page      int
	SortOrder string
}

// Pagination entity from query parameter from get apis
type Pagination struct {
	Limit     int
	Page      int
	SortOrder string
}

// ToOffsetPagination returns the paging part of the header.
func (qh *QueryHeader) ToOffsetPagination() Pagination {
	return Pagination{
		Limit:     qh.Limit,
		Page:      qh.Page,
		SortOrder: qh.SortOrder,
	}
}

// normalizeParams rewrites camelCase query keys to snake_case.
// When both are present the snake_case value wins.
func normalizeParams(params map[string]string) map[string]string {
	aliases := map[string]string{
		"sortOrder": "sort_order",
	}

	normalized := make(map[string]string, len(params))

	for k, v := range params {
		normalized[k] = v
	}

	for camel, snake := range aliases {
		if _, hasSnake := normalized[snake]; hasSnake {
			delete(normalized, camel)
			continue
		}

		if val, hasCamel := normalized[camel]; hasCamel {
			normalized[snake] = val
			delete(normalized, camel)
		}
	}

	return normalized
}

// parsePositiveInt parses value and requires it to be at least 1.
func parsePositiveInt(value, paramName string) (int, error) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return 0, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", paramName)
	}

	return parsed, nil
}

// ValidateParameters validate and return struct of default parameters.
func ValidateParameters(params map[string]string) (*QueryHeader, error) {
	params = normalizeParams(params)

	var (
		engineType string
		name       string
		status     string
		limit      = constant.DefaultPaginationLimit
		page       = constant.DefaultPaginationPage
		sortOrder  = constant.SortOrderDesc
	)

	for key, value := range params {
		switch key {
		case "type":
			if !model.EngineType(value).IsDeclared() {
				return nil, pkg.ValidateBusinessError(constant.ErrInvalidEngineType, "", value)
			}

			engineType = value
		case "name":
			name = value
		case "status":
			if !isDataSourceStatus(value) {
				return nil, pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "status")
			}

			status = value
		case "limit":
			parsed, err := parsePositiveInt(value, "limit")
			if err != nil {
				return nil, err
			}

			limit = parsed
		case "page":
			parsed, err := parsePositiveInt(value, "page")
			if err != nil {
				return nil, err
			}

			page = parsed
		case "sort_order":
			sortOrder = strings.ToLower(value)
		}
	}

	if err := validatePagination(sortOrder, limit); err != nil {
		return nil, err
	}

	return &QueryHeader{
		Type:      engineType,
		Name:      name,
		Status:    status,
		Limit:     limit,
		Page:      page,
		SortOrder: sortOrder,
	}, nil
}

func isDataSourceStatus(value string) bool {
	switch value {
	case constant.DataSourceStatusConnected, constant.DataSourceStatusFailed, constant.DataSourceStatusDisconnected:
		return true
	default:
		return false
	}
}

func validatePagination(sortOrder string, limit int) error {
	maxPaginationLimit := pkg.SafeInt64ToInt(libCommons.GetenvIntOrDefault("MAX_PAGINATION_LIMIT", constant.DefaultMaxPaginationLimit))

	if limit > maxPaginationLimit {
		return pkg.ValidateBusinessError(constant.ErrPaginationLimitExceeded, "", maxPaginationLimit)
	}

	if sortOrder != constant.SortOrderAsc && sortOrder != constant.SortOrderDesc {
		return pkg.ValidateBusinessError(constant.ErrInvalidQueryParameter, "", "sort_order")
	}

	return nil
}
