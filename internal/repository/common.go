package repository

import "errors"

// ErrStaleState 条件更新未命中，记录状态已被其他请求修改
var ErrStaleState = errors.New("record state changed concurrently")

// Page 偏移分页参数
type Page struct {
	Offset int
	Limit  int
}
