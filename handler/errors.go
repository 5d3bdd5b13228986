package handler

import (
	"Margin/pkg/response"
	"Margin/service"
	"errors"
	"net/http"
)

var errorCodes = []struct {
	err  error
	code int
}{
	{service.ErrNoteNotFound, response.CodeNotFound},
	{service.ErrContextNotFound, response.CodeNotFound},
	{service.ErrTagNotFound, response.CodeNotFound},
	{service.ErrUserNotFound, response.CodeNotFound},
	{service.ErrActivationKeyNotFound, response.CodeNotFound},
	{service.ErrNotNoteAuthor, response.CodeForbidden},
	{service.ErrNotSessionAuthor, response.CodeForbidden},
	{service.ErrUsernameTaken, response.CodeConflict},
	{service.ErrUserAlreadyEnabled, response.CodeConflict},
	{service.ErrActivationKeyConsumed, response.CodeConflict},
	{service.ErrInvalidCredentials, response.CodeUnauthorized},
	{service.ErrUserDisabled, response.CodeUnauthorized},
	{service.ErrInvalidUser, response.CodeBadRequest},
	{service.ErrContentRequired, response.CodeBadRequest},
	{service.ErrPasswordRequired, response.CodeBadRequest},
	{service.ErrActivationKeyRequired, response.CodeBadRequest},
	{service.ErrActivationKeyMismatch, response.CodeBadRequest},
}

// bizError 把 service 层的哨兵错误翻译成业务错误码，其余按 500 处理
func bizError(err error) error {
	for _, item := range errorCodes {
		if errors.Is(err, item.err) {
			return response.NewError(item.code, err.Error())
		}
	}
	return err
}

func badRequest(err error) error {
	return response.NewError(http.StatusBadRequest, err.Error())
}
