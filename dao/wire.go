package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewRoleDAO,
	NewUserRoleDAO,
	NewActivationKeyDAO,
	NewContextDAO,
	NewNoteDAO,
	NewTagDAO,
	NewNoteTagDAO,
	NewNoteMentionDAO,
	NewBookmarkDAO,
	NewLiveSessionDAO,
)
