package test

import (
	"testing"

	"campus-event-system/internal/global/response"

	"github.com/stretchr/testify/require"
)

func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	require.False(t, resp.Success)
	require.Equal(t, expected.Code, resp.Code)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	require.True(t, resp.Success, "unexpected error: %s %s", resp.Code, resp.Error)
}

// CreatedID 从创建响应里取出自增主键
func CreatedID(t *testing.T, resp response.ResponseBody) uint {
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data %v 不是对象", resp.Data)
	id, ok := data["id"].(float64)
	require.True(t, ok, "data 里没有 id: %v", resp.Data)
	return uint(id)
}
