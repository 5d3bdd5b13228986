package service

import "errors"

// 前置条件不满足时返回，调用方用 errors.Is 判断
var (
	ErrAuthorRequired  = errors.New("作者不能为空")
	ErrContentRequired = errors.New("笔记内容不能为空")
	ErrNoteRequired    = errors.New("笔记不能为空")
	ErrUserRequired    = errors.New("用户不能为空")
	ErrNotNoteAuthor   = errors.New("只有作者本人可以删除笔记")
	ErrNoteNotFound    = errors.New("笔记不存在")
	ErrContextNotFound = errors.New("讨论不存在")
	ErrTagNotFound     = errors.New("标签不存在")

	ErrNotSessionAuthor = errors.New("只有发起人可以结束实时会话")

	ErrInvalidUser           = errors.New("用户信息不合法")
	ErrUsernameTaken         = errors.New("用户名已存在")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserAlreadyEnabled    = errors.New("用户已启用")
	ErrUserDisabled          = errors.New("用户未启用")
	ErrPasswordRequired      = errors.New("密码不能为空")
	ErrInvalidCredentials    = errors.New("用户名或密码错误")
	ErrActivationKeyRequired = errors.New("激活码不能为空")
	ErrActivationKeyNotFound = errors.New("激活码不存在")
	ErrActivationKeyMismatch = errors.New("激活码与用户不匹配")
	ErrActivationKeyConsumed = errors.New("激活码已被使用")
)
