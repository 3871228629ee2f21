package consts

// 角色
const (
	RoleUser   = "USER"
	RoleEditor = "EDITOR"
	RoleAdmin  = "ADMIN"
)

const (
	DefaultPageSize      = 10
	DefaultMediaPageSize = 20
	MaxPageSize          = 100
)

// 发布前的内容护栏
const (
	MinPublishWords   = 300
	MaxSEOTitleLength = 60
)
