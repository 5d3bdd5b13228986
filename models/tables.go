package models

// Tables 参与 AutoMigrate 的全部表
func Tables() []any {
	return []any{
		&Context{},
		&Note{},
		&Tag{},
		&NoteTag{},
		&NoteMention{},
		&Bookmark{},
		&LiveSession{},
		&User{},
		&Role{},
		&UserRole{},
		&ActivationKey{},
	}
}
