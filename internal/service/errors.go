package service

import "errors"

// 服务层哨兵错误，handler 统一映射到 HTTP 状态码
var (
	ErrFollowSelf   = errors.New("cannot follow self")
	ErrNotFound     = errors.New("not found")
	ErrTeamFull     = errors.New("team is full")
	ErrEmptyContent = errors.New("content is required")
	ErrAccessDenied = errors.New("access denied")
)
