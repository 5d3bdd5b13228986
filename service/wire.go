package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewValidator,

	wire.Struct(new(NoteService), "*"),
	wire.Bind(new(INoteService), new(*NoteService)),

	wire.Struct(new(LiveSessionService), "*"),
	wire.Bind(new(ILiveSessionService), new(*LiveSessionService)),

	wire.Struct(new(UserAccountService), "*"),
	wire.Bind(new(IUserAccountService), new(*UserAccountService)),
)
