package service

import (
	"Margin/config"
	"Margin/dao"
	"Margin/dao/cache"
	"Margin/models"
	"Margin/pkg/database/dbtest"
	"Margin/pkg/snowflake"
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRedis 只实现用到的命令，其余调用会 panic
type fakeRedis struct {
	redis.Cmdable
	err       error
	members   []string
	added     []string
	deleted   []string
	published []string
}

func (f *fakeRedis) intCmd(ctx context.Context, val int64) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (f *fakeRedis) SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.added = append(f.added, key)
	return f.intCmd(ctx, int64(len(members)))
}

func (f *fakeRedis) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(f.members)
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	return f.intCmd(ctx, int64(len(keys)))
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.published = append(f.published, channel)
	return f.intCmd(ctx, 1)
}

type testEnv struct {
	db       *gorm.DB
	redis    *fakeRedis
	notes    *NoteService
	sessions *LiveSessionService
	accounts *UserAccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.New(t, models.Tables()...)
	rdb := &fakeRedis{}
	users := dao.NewUsers(db)

	sessions := &LiveSessionService{
		LiveSessionDAO: dao.NewLiveSessionDAO(db),
		Storage:        cache.NewLiveSessionStorage(rdb),
	}
	notes := &NoteService{
		DB:                 db,
		NoteDAO:            dao.NewNoteDAO(db),
		ContextDAO:         dao.NewContextDAO(db),
		TagDAO:             dao.NewTagDAO(db),
		NoteTagDAO:         dao.NewNoteTagDAO(db),
		NoteMentionDAO:     dao.NewNoteMentionDAO(db),
		BookmarkDAO:        dao.NewBookmarkDAO(db),
		LiveSessionDAO:     dao.NewLiveSessionDAO(db),
		UsersRepo:          users,
		LiveSessionService: sessions,
	}
	accounts := &UserAccountService{
		DB:               db,
		Config:           &config.Account{MainRole: "ROLE_USER", AdminRole: "ROLE_ADMIN"},
		Validate:         NewValidator(),
		UsersRepo:        users,
		RoleDAO:          dao.NewRoleDAO(db),
		UserRoleDAO:      dao.NewUserRoleDAO(db),
		ActivationKeyDAO: dao.NewActivationKeyDAO(db),
	}

	return &testEnv{db: db, redis: rdb, notes: notes, sessions: sessions, accounts: accounts}
}

func (e *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       snowflake.GenID(),
		Username: username,
		Password: "secret",
		Enabled:  true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Where(where, args...).Count(&n).Error)
	return n
}
