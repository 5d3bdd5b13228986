package service

import (
	"Margin/dao/cache"
	"Margin/models"
	"Margin/types"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_AddNote_Preconditions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")

	_, err := env.notes.AddNote(ctx, nil)
	assert.ErrorIs(t, err, ErrAuthorRequired)

	_, err = env.notes.AddNote(ctx, &AddNoteOpt{Content: "hello"})
	assert.ErrorIs(t, err, ErrAuthorRequired)

	_, err = env.notes.AddNote(ctx, &AddNoteOpt{Author: alice, Content: "  "})
	assert.ErrorIs(t, err, ErrContentRequired)

	assert.Zero(t, env.count(t, &models.Note{}, "1 = 1"))
}

func TestNoteService_AddNote_TagsAndMentions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	author := env.seedUser(t, "carol")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "hello #math @alice @bob"})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	tags, err := env.notes.ListNoteTags(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "math", tags[0].Name)

	mentions, err := env.notes.ListNoteMentions(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, alice.ID, mentions[0].UserID)
}

func TestNoteService_AddNote_DottedMention(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "john")
	johnDoe := env.seedUser(t, "john.doe")
	author := env.seedUser(t, "carol")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "thanks @john.doe"})
	require.NoError(t, err)

	mentions, err := env.notes.ListNoteMentions(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, johnDoe.ID, mentions[0].UserID)
}

func TestNoteService_AddNote_MentionIgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "alice")
	author := env.seedUser(t, "carol")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "@Alice and again @alice"})
	require.NoError(t, err)

	mentions, err := env.notes.ListNoteMentions(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, mentions, 1)
	assert.Equal(t, alice.ID, mentions[0].UserID)
}

func TestNoteService_AddNote_DistinctTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")

	first, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "#Go #go #rust"})
	require.NoError(t, err)
	_, err = env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "more #go"})
	require.NoError(t, err)

	assert.Equal(t, int64(2), env.count(t, &models.NoteTag{}, "note_id = ?", first.ID))
	assert.Equal(t, int64(2), env.count(t, &models.Tag{}, "1 = 1"))
}

func TestNoteService_AddNote_ContextDescriptionTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")

	discussion, err := env.notes.CreateContext(ctx, "Chapter 1", "about #physics")
	require.NoError(t, err)
	fragment := &models.Tag{Name: "intro"}
	require.NoError(t, env.db.Create(fragment).Error)
	parent, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "first"})
	require.NoError(t, err)

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{
		Author:      author,
		Content:     "see #math",
		Context:     discussion,
		FragmentTag: fragment,
		ParentNote:  parent,
	})
	require.NoError(t, err)
	require.NotNil(t, note.ContextID)
	assert.Equal(t, discussion.ID, *note.ContextID)
	require.NotNil(t, note.FragmentTagID)
	assert.Equal(t, fragment.ID, *note.FragmentTagID)
	require.NotNil(t, note.ParentNoteID)
	assert.Equal(t, parent.ID, *note.ParentNoteID)

	tags, err := env.notes.ListNoteTags(ctx, note.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"math", "physics"}, names)
}

func TestNoteService_Bookmark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")
	reader := env.seedUser(t, "dave")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "bookmark me"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.notes.BookmarkNoteByUser(ctx, nil, reader), ErrNoteRequired)
	assert.ErrorIs(t, env.notes.BookmarkNoteByUser(ctx, note, nil), ErrUserRequired)
	assert.ErrorIs(t, env.notes.UnbookmarkNoteByUser(ctx, nil, reader), ErrNoteRequired)
	assert.ErrorIs(t, env.notes.UnbookmarkNoteByUser(ctx, note, nil), ErrUserRequired)

	require.NoError(t, env.notes.BookmarkNoteByUser(ctx, note, reader))
	ok, err := env.notes.IsBookmarked(ctx, note, reader)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, env.notes.UnbookmarkNoteByUser(ctx, note, reader))
	ok, err = env.notes.IsBookmarked(ctx, note, reader)
	require.NoError(t, err)
	assert.False(t, ok)

	// 没有收藏时取消收藏什么都不做
	require.NoError(t, env.notes.UnbookmarkNoteByUser(ctx, note, reader))
}

func TestNoteService_DeleteNoteByAuthor_NotAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")
	other := env.seedUser(t, "dave")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "keep #me"})
	require.NoError(t, err)

	err = env.notes.DeleteNoteByAuthor(ctx, note, other)
	assert.ErrorIs(t, err, ErrNotNoteAuthor)
	assert.Equal(t, int64(1), env.count(t, &models.Note{}, "id = ?", note.ID))
	assert.Equal(t, int64(1), env.count(t, &models.NoteTag{}, "note_id = ?", note.ID))

	assert.ErrorIs(t, env.notes.DeleteNoteByAuthor(ctx, nil, author), ErrNoteRequired)
	assert.ErrorIs(t, env.notes.DeleteNoteByAuthor(ctx, note, nil), ErrUserRequired)
}

func TestNoteService_DeleteNoteByAuthor_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")
	env.seedUser(t, "alice")
	reader := env.seedUser(t, "dave")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "#math with @alice"})
	require.NoError(t, err)
	child, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: reader, Content: "reply", ParentNote: note})
	require.NoError(t, err)
	require.NoError(t, env.notes.BookmarkNoteByUser(ctx, note, reader))
	session, err := env.sessions.StartLiveSession(ctx, note, author, map[string]any{"topic": "math"})
	require.NoError(t, err)
	// 绕过服务直接插入的会话也要被清理
	require.NoError(t, env.db.Create(&models.LiveSession{ID: session.ID + 1, NoteID: note.ID, AuthorID: author.ID}).Error)

	require.NoError(t, env.notes.DeleteNoteByAuthor(ctx, note, author))

	assert.Zero(t, env.count(t, &models.Note{}, "id = ?", note.ID))
	assert.Zero(t, env.count(t, &models.NoteTag{}, "note_id = ?", note.ID))
	assert.Zero(t, env.count(t, &models.NoteMention{}, "note_id = ?", note.ID))
	assert.Zero(t, env.count(t, &models.Bookmark{}, "note_id = ?", note.ID))
	assert.Zero(t, env.count(t, &models.LiveSession{}, "note_id = ?", note.ID))

	reloaded, err := env.notes.GetNote(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ParentNoteID)

	assert.Contains(t, env.redis.deleted, cache.LiveSessionMembersKey(session.ID))
	assert.Len(t, env.redis.published, 2)

	// 标签本身保留
	assert.Equal(t, int64(1), env.count(t, &models.Tag{}, "name = ?", "math"))
}

func TestNoteService_FindAllNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	carol := env.seedUser(t, "carol")
	dave := env.seedUser(t, "dave")

	discussion, err := env.notes.CreateContext(ctx, "Chapter 1", "")
	require.NoError(t, err)

	mine, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: carol, Content: "mine", Context: discussion})
	require.NoError(t, err)
	theirs, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: dave, Content: "theirs", Context: discussion})
	require.NoError(t, err)
	elsewhere, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: dave, Content: "elsewhere"})
	require.NoError(t, err)
	require.NoError(t, env.notes.BookmarkNoteByUser(ctx, elsewhere, carol))

	ids := func(page *types.PageResult[*models.Note]) []uint64 {
		out := make([]uint64, 0, len(page.Rows))
		for _, n := range page.Rows {
			out = append(out, n.ID)
		}
		return out
	}

	t.Run("no filter", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol})
		require.NoError(t, err)
		assert.Empty(t, page.Rows)
		assert.Zero(t, page.Total)
	})

	t.Run("all without context", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, All: true})
		require.NoError(t, err)
		assert.Empty(t, page.Rows)
	})

	t.Run("all without context same as all false", func(t *testing.T) {
		withAll, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, All: true, UserNotes: true})
		require.NoError(t, err)
		without, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, UserNotes: true})
		require.NoError(t, err)
		assert.Equal(t, ids(without), ids(withAll))
		assert.Equal(t, without.Total, withAll.Total)
	})

	t.Run("all in context", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{All: true, Context: discussion})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint64{mine.ID, theirs.ID}, ids(page))
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("user notes", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, UserNotes: true})
		require.NoError(t, err)
		assert.Equal(t, []uint64{mine.ID}, ids(page))
	})

	t.Run("user favorites", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, UserFavorites: true})
		require.NoError(t, err)
		assert.Equal(t, []uint64{elsewhere.ID}, ids(page))
	})

	t.Run("notes or favorites", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, UserNotes: true, UserFavorites: true})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint64{mine.ID, elsewhere.ID}, ids(page))
		assert.Equal(t, int64(2), page.Total)
	})

	t.Run("user filter scoped to context", func(t *testing.T) {
		page, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{User: carol, UserNotes: true, UserFavorites: true, Context: discussion})
		require.NoError(t, err)
		assert.Equal(t, []uint64{mine.ID}, ids(page))
	})

	t.Run("user required", func(t *testing.T) {
		_, err := env.notes.FindAllNotes(ctx, &FindNotesOpt{UserNotes: true})
		assert.ErrorIs(t, err, ErrUserRequired)
	})
}

func TestNoteService_Lookups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.notes.GetNote(ctx, 42)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	_, err = env.notes.GetContext(ctx, 42)
	assert.ErrorIs(t, err, ErrContextNotFound)
	_, err = env.notes.FindTagByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrTagNotFound)

	require.NoError(t, env.db.Create(&models.Tag{Name: "math"}).Error)
	tag, err := env.notes.FindTagByName(ctx, "#Math")
	require.NoError(t, err)
	assert.Equal(t, "math", tag.Name)
}
