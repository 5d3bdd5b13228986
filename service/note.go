package service

import (
	"Margin/dao"
	"Margin/models"
	"Margin/pkg/database"
	"Margin/pkg/log"
	"Margin/pkg/snowflake"
	"Margin/pkg/utils"
	"Margin/types"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ INoteService = (*NoteService)(nil)

type INoteService interface {
	AddNote(ctx context.Context, opt *AddNoteOpt) (*models.Note, error)
	BookmarkNoteByUser(ctx context.Context, note *models.Note, user *models.User) error
	UnbookmarkNoteByUser(ctx context.Context, note *models.Note, user *models.User) error
	DeleteNoteByAuthor(ctx context.Context, note *models.Note, user *models.User) error
	FindAllNotes(ctx context.Context, opt *FindNotesOpt) (*types.PageResult[*models.Note], error)

	GetNote(ctx context.Context, id uint64) (*models.Note, error)
	ListNoteTags(ctx context.Context, noteID uint64) ([]*models.Tag, error)
	ListNoteMentions(ctx context.Context, noteID uint64) ([]*models.NoteMention, error)
	IsBookmarked(ctx context.Context, note *models.Note, user *models.User) (bool, error)
	CreateContext(ctx context.Context, title, description string) (*models.Context, error)
	GetContext(ctx context.Context, id uint64) (*models.Context, error)
	FindTagByName(ctx context.Context, name string) (*models.Tag, error)
}

type NoteService struct {
	DB                 *gorm.DB
	NoteDAO            *dao.NoteDAO
	ContextDAO         *dao.ContextDAO
	TagDAO             *dao.TagDAO
	NoteTagDAO         *dao.NoteTagDAO
	NoteMentionDAO     *dao.NoteMentionDAO
	BookmarkDAO        *dao.BookmarkDAO
	LiveSessionDAO     *dao.LiveSessionDAO
	UsersRepo          *dao.Users
	LiveSessionService ILiveSessionService
}

// AddNoteOpt 创建笔记参数，Context / FragmentTag / ParentNote 可选
type AddNoteOpt struct {
	Author      *models.User
	Content     string
	Context     *models.Context
	FragmentTag *models.Tag
	ParentNote  *models.Note
}

// FindNotesOpt 笔记列表参数
// UserNotes / UserFavorites / All 可以同时为 true，All 只有在 Context 不为空时生效
type FindNotesOpt struct {
	User          *models.User
	UserNotes     bool
	UserFavorites bool
	All           bool
	Context       *models.Context
	FragmentTag   *models.Tag
	Page          types.PageRequest
}

// AddNote 创建笔记，并从内容和讨论描述中提取标签、@用户
func (s *NoteService) AddNote(ctx context.Context, opt *AddNoteOpt) (*models.Note, error) {
	if opt == nil || opt.Author == nil {
		return nil, ErrAuthorRequired
	}
	if strings.TrimSpace(opt.Content) == "" {
		return nil, ErrContentRequired
	}

	note := &models.Note{
		ID:       snowflake.GenID(),
		AuthorID: opt.Author.ID,
		Content:  opt.Content,
	}
	text := opt.Content
	if opt.Context != nil {
		note.ContextID = &opt.Context.ID
		if opt.Context.Description != "" {
			text += "\n" + opt.Context.Description
		}
	}
	if opt.FragmentTag != nil {
		note.FragmentTagID = &opt.FragmentTag.ID
	}
	if opt.ParentNote != nil {
		note.ParentNoteID = &opt.ParentNote.ID
	}

	err := database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if err := s.NoteDAO.Create(ctx, note); err != nil {
			return fmt.Errorf("create note: %w", err)
		}
		if err := s.linkTags(ctx, note.ID, utils.TagsFromContent(text)); err != nil {
			return err
		}
		return s.linkMentions(ctx, note.ID, utils.MentionsFromContent(text))
	})
	if err != nil {
		return nil, err
	}

	log.L.Info("note created", zap.Uint64("note_id", note.ID), zap.Uint64("author_id", note.AuthorID))
	return note, nil
}

// linkTags 每个不同的标签挂一条 NoteTag
func (s *NoteService) linkTags(ctx context.Context, noteID uint64, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tags, err := s.TagDAO.FindOrCreate(ctx, names)
	if err != nil {
		return fmt.Errorf("find or create tags: %w", err)
	}

	tagIDs := make([]uint64, 0, len(names))
	for _, name := range names {
		if tag, ok := tags[name]; ok {
			tagIDs = append(tagIDs, tag.ID)
		}
	}
	if err := s.NoteTagDAO.BatchCreate(ctx, noteID, tagIDs); err != nil {
		return fmt.Errorf("link note tags: %w", err)
	}
	return nil
}

// linkMentions 只为存在的用户名建立 NoteMention，其余静默丢弃
// 用户名忽略大小写，同一个用户只记一次
func (s *NoteService) linkMentions(ctx context.Context, noteID uint64, usernames []string) error {
	if len(usernames) == 0 {
		return nil
	}

	resolved, err := s.UsersRepo.FindIDsByUsernames(ctx, usernames)
	if err != nil {
		return fmt.Errorf("resolve mentions: %w", err)
	}

	seen := make(map[uint64]bool, len(resolved))
	userIDs := make([]uint64, 0, len(resolved))
	for _, username := range usernames {
		id, ok := lookupUsername(resolved, username)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		userIDs = append(userIDs, id)
	}
	if err := s.NoteMentionDAO.BatchCreate(ctx, noteID, userIDs); err != nil {
		return fmt.Errorf("link note mentions: %w", err)
	}
	return nil
}

// lookupUsername 优先取大小写完全一致的用户
func lookupUsername(resolved map[string]uint64, username string) (uint64, bool) {
	if id, ok := resolved[username]; ok {
		return id, true
	}
	for name, id := range resolved {
		if strings.EqualFold(name, username) {
			return id, true
		}
	}
	return 0, false
}

// BookmarkNoteByUser 收藏，插入失败直接返回错误
func (s *NoteService) BookmarkNoteByUser(ctx context.Context, note *models.Note, user *models.User) error {
	if note == nil {
		return ErrNoteRequired
	}
	if user == nil {
		return ErrUserRequired
	}

	bookmark := &models.Bookmark{NoteID: note.ID, UserID: user.ID}
	if err := s.BookmarkDAO.Create(ctx, bookmark); err != nil {
		return fmt.Errorf("bookmark note %d: %w", note.ID, err)
	}
	return nil
}

// UnbookmarkNoteByUser 取消收藏，没有收藏记录时什么都不做
func (s *NoteService) UnbookmarkNoteByUser(ctx context.Context, note *models.Note, user *models.User) error {
	if note == nil {
		return ErrNoteRequired
	}
	if user == nil {
		return ErrUserRequired
	}

	return database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		bookmark, err := s.BookmarkDAO.GetByNoteUser(ctx, note.ID, user.ID)
		if err != nil {
			return fmt.Errorf("find bookmark: %w", err)
		}
		if bookmark == nil {
			return nil
		}
		if err := s.BookmarkDAO.Delete(ctx, bookmark); err != nil {
			return fmt.Errorf("delete bookmark: %w", err)
		}
		return nil
	})
}

func (s *NoteService) IsBookmarked(ctx context.Context, note *models.Note, user *models.User) (bool, error) {
	if note == nil || user == nil {
		return false, nil
	}
	return s.BookmarkDAO.IsBookmarked(ctx, note.ID, user.ID)
}

// DeleteNoteByAuthor 删除笔记及其关联数据，顺序不能调整：
// 子笔记脱钩 -> 标签 -> @ -> 收藏 -> 实时会话 -> 笔记本身
func (s *NoteService) DeleteNoteByAuthor(ctx context.Context, note *models.Note, user *models.User) error {
	if note == nil {
		return ErrNoteRequired
	}
	if user == nil {
		return ErrUserRequired
	}
	if !note.IsAuthoredBy(user) {
		return ErrNotNoteAuthor
	}

	err := database.RunInTx(ctx, s.DB, func(ctx context.Context) error {
		if _, err := s.NoteDAO.DetachChildren(ctx, note.ID); err != nil {
			return fmt.Errorf("detach child notes: %w", err)
		}
		if _, err := s.NoteTagDAO.DeleteByNoteID(ctx, note.ID); err != nil {
			return fmt.Errorf("delete note tags: %w", err)
		}
		if _, err := s.NoteMentionDAO.DeleteByNoteID(ctx, note.ID); err != nil {
			return fmt.Errorf("delete note mentions: %w", err)
		}
		if _, err := s.BookmarkDAO.DeleteByNoteID(ctx, note.ID); err != nil {
			return fmt.Errorf("delete bookmarks: %w", err)
		}

		sessions, err := s.LiveSessionDAO.ListByNoteID(ctx, note.ID)
		if err != nil {
			return fmt.Errorf("list live sessions: %w", err)
		}
		for _, session := range sessions {
			if err := s.LiveSessionService.DeleteLiveSessionByAuthor(ctx, session, user); err != nil {
				return fmt.Errorf("tear down live session %d: %w", session.ID, err)
			}
		}
		if _, err := s.LiveSessionDAO.DeleteByNoteID(ctx, note.ID); err != nil {
			return fmt.Errorf("delete live sessions: %w", err)
		}

		if err := s.NoteDAO.DeleteByID(ctx, note.ID); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.L.Info("note deleted", zap.Uint64("note_id", note.ID), zap.Uint64("author_id", user.ID))
	return nil
}

// FindAllNotes 按 我的笔记 / 我的收藏 / 讨论下全部 查询笔记
func (s *NoteService) FindAllNotes(ctx context.Context, opt *FindNotesOpt) (*types.PageResult[*models.Note], error) {
	if opt == nil || (!opt.UserNotes && !opt.UserFavorites && !opt.All) {
		return types.EmptyPage[*models.Note](), nil
	}

	var (
		notes []*models.Note
		total int64
		err   error
	)

	// All 必须配合 Context 使用，否则按 All=false 处理
	if opt.All && opt.Context != nil {
		notes, total, err = s.NoteDAO.ListByContext(ctx, opt.Context.ID, tagID(opt.FragmentTag), opt.Page)
		if err != nil {
			return nil, fmt.Errorf("list context notes: %w", err)
		}
		return &types.PageResult[*models.Note]{Rows: notes, Total: total}, nil
	}

	if !opt.UserNotes && !opt.UserFavorites {
		return types.EmptyPage[*models.Note](), nil
	}
	if opt.User == nil {
		return nil, ErrUserRequired
	}

	filter := dao.NoteFilter{}
	if opt.Context != nil {
		filter.ContextID = &opt.Context.ID
		filter.FragmentTagID = tagID(opt.FragmentTag)
	}
	if opt.UserNotes {
		filter.AuthorID = &opt.User.ID
	}
	if opt.UserFavorites {
		filter.BookmarkedBy = &opt.User.ID
	}

	notes, total, err = s.NoteDAO.ListByFilter(ctx, filter, opt.Page)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return &types.PageResult[*models.Note]{Rows: notes, Total: total}, nil
}

func tagID(tag *models.Tag) *uint64 {
	if tag == nil {
		return nil
	}
	return &tag.ID
}

func (s *NoteService) GetNote(ctx context.Context, id uint64) (*models.Note, error) {
	note, err := s.NoteDAO.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoteNotFound
	}
	return note, err
}

func (s *NoteService) ListNoteTags(ctx context.Context, noteID uint64) ([]*models.Tag, error) {
	return s.NoteTagDAO.ListTagsByNoteID(ctx, noteID)
}

func (s *NoteService) ListNoteMentions(ctx context.Context, noteID uint64) ([]*models.NoteMention, error) {
	return s.NoteMentionDAO.ListByNoteID(ctx, noteID)
}

// CreateContext 创建讨论
func (s *NoteService) CreateContext(ctx context.Context, title, description string) (*models.Context, error) {
	item := &models.Context{
		ID:          snowflake.GenID(),
		Title:       title,
		Description: description,
	}
	if err := s.ContextDAO.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	return item, nil
}

func (s *NoteService) GetContext(ctx context.Context, id uint64) (*models.Context, error) {
	item, err := s.ContextDAO.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContextNotFound
	}
	return item, err
}

// FindTagByName 名称大小写不敏感，统一按小写存储
func (s *NoteService) FindTagByName(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
	tag, err := s.TagDAO.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}
