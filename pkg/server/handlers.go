package server

import (
	"Margin/handler"
)

type Handlers struct {
	Account *handler.Account
	Context *handler.ContextHandler
	Note    *handler.Note
}
