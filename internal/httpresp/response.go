package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T, page, limit int, total int64) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}
