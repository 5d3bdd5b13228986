package handler

import (
	"Margin/config"
	"Margin/middleware"
	"Margin/models"
	"Margin/pkg/context"
	"Margin/pkg/response"
	"Margin/service"
	"Margin/types"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type Note struct {
	Config             *config.Config
	NoteService        service.INoteService
	LiveSessionService service.ILiveSessionService
	AccountService     service.IUserAccountService
}

func (n *Note) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(n.Config.Jwt)
	g := r.Group("/v1/notes", authorize)
	g.POST("", context.Wrap(n.CreateNote))
	g.GET("", context.Wrap(n.ListNotes))
	g.GET("/:id", context.Wrap(n.GetNote))
	g.DELETE("/:id", context.Wrap(n.DeleteNote))
	g.POST("/:id/bookmark", context.Wrap(n.Bookmark))
	g.DELETE("/:id/bookmark", context.Wrap(n.Unbookmark))
	g.POST("/:id/live-sessions", context.Wrap(n.StartLiveSession))
	g.GET("/:id/live-sessions", context.Wrap(n.ListLiveSessions))
}

func (n *Note) CreateNote(c *gin.Context) error {
	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	ctx := c.Request.Context()

	user, err := currentUser(c, n.AccountService)
	if err != nil {
		return err
	}

	opt := &service.AddNoteOpt{Author: user, Content: req.Content}
	if req.ContextID != 0 {
		if opt.Context, err = n.NoteService.GetContext(ctx, req.ContextID); err != nil {
			return bizError(err)
		}
	}
	if req.FragmentTag != "" {
		if opt.FragmentTag, err = n.NoteService.FindTagByName(ctx, req.FragmentTag); err != nil {
			return bizError(err)
		}
	}
	if req.ParentNoteID != 0 {
		if opt.ParentNote, err = n.NoteService.GetNote(ctx, req.ParentNoteID); err != nil {
			return bizError(err)
		}
	}

	note, err := n.NoteService.AddNote(ctx, opt)
	if err != nil {
		return bizError(err)
	}

	response.Success(c, types.CreateNoteResponse{ID: note.ID})
	return nil
}

func (n *Note) ListNotes(c *gin.Context) error {
	var req types.ListNotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	ctx := c.Request.Context()

	user, err := currentUser(c, n.AccountService)
	if err != nil {
		return err
	}

	opt := &service.FindNotesOpt{
		User:          user,
		UserNotes:     req.Mine,
		UserFavorites: req.Favorites,
		All:           req.All,
		Page:          req.PageRequest,
	}
	if req.ContextID != 0 {
		if opt.Context, err = n.NoteService.GetContext(ctx, req.ContextID); err != nil {
			return bizError(err)
		}
	}
	if req.FragmentTag != "" {
		if opt.FragmentTag, err = n.NoteService.FindTagByName(ctx, req.FragmentTag); err != nil {
			return bizError(err)
		}
	}

	page, err := n.NoteService.FindAllNotes(ctx, opt)
	if err != nil {
		return bizError(err)
	}

	rows := make([]*types.NoteItem, 0, len(page.Rows))
	for _, note := range page.Rows {
		rows = append(rows, types.NewNoteItem(note))
	}
	response.Success(c, types.ListNotesResponse{Rows: rows, Total: page.Total})
	return nil
}

func (n *Note) GetNote(c *gin.Context) error {
	user, note, err := n.loadNote(c)
	if err != nil {
		return err
	}

	var (
		g          errgroup.Group
		ctx        = c.Request.Context()
		tags       []*models.Tag
		mentions   []*models.NoteMention
		bookmarked bool
	)
	g.Go(func() (err error) {
		tags, err = n.NoteService.ListNoteTags(ctx, note.ID)
		return err
	})
	g.Go(func() (err error) {
		mentions, err = n.NoteService.ListNoteMentions(ctx, note.ID)
		return err
	})
	g.Go(func() (err error) {
		bookmarked, err = n.NoteService.IsBookmarked(ctx, note, user)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	detail := types.NoteDetail{
		NoteItem:   *types.NewNoteItem(note),
		Tags:       make([]string, 0, len(tags)),
		Mentions:   make([]uint64, 0, len(mentions)),
		Bookmarked: bookmarked,
	}
	for _, tag := range tags {
		detail.Tags = append(detail.Tags, tag.Name)
	}
	for _, mention := range mentions {
		detail.Mentions = append(detail.Mentions, mention.UserID)
	}

	response.Success(c, detail)
	return nil
}

func (n *Note) DeleteNote(c *gin.Context) error {
	user, note, err := n.loadNote(c)
	if err != nil {
		return err
	}
	if err := n.NoteService.DeleteNoteByAuthor(c.Request.Context(), note, user); err != nil {
		return bizError(err)
	}

	response.Success(c, nil)
	return nil
}

func (n *Note) Bookmark(c *gin.Context) error {
	user, note, err := n.loadNote(c)
	if err != nil {
		return err
	}
	ctx := c.Request.Context()

	// 重复收藏直接返回成功
	bookmarked, err := n.NoteService.IsBookmarked(ctx, note, user)
	if err != nil {
		return err
	}
	if !bookmarked {
		if err := n.NoteService.BookmarkNoteByUser(ctx, note, user); err != nil {
			return bizError(err)
		}
	}

	response.Success(c, nil)
	return nil
}

func (n *Note) Unbookmark(c *gin.Context) error {
	user, note, err := n.loadNote(c)
	if err != nil {
		return err
	}
	if err := n.NoteService.UnbookmarkNoteByUser(c.Request.Context(), note, user); err != nil {
		return bizError(err)
	}

	response.Success(c, nil)
	return nil
}

func (n *Note) StartLiveSession(c *gin.Context) error {
	var req types.StartLiveSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return badRequest(err)
		}
	}

	user, note, err := n.loadNote(c)
	if err != nil {
		return err
	}
	session, err := n.LiveSessionService.StartLiveSession(c.Request.Context(), note, user, req.Metadata)
	if err != nil {
		return bizError(err)
	}

	response.Success(c, types.NewLiveSessionItem(session))
	return nil
}

func (n *Note) ListLiveSessions(c *gin.Context) error {
	_, note, err := n.loadNote(c)
	if err != nil {
		return err
	}
	ctx := c.Request.Context()
	sessions, err := n.LiveSessionService.ListByNote(ctx, note.ID)
	if err != nil {
		return err
	}

	items := make([]*types.LiveSessionItem, 0, len(sessions))
	for _, session := range sessions {
		item := types.NewLiveSessionItem(session)
		item.Members = n.LiveSessionService.ListMembers(ctx, session.ID)
		items = append(items, item)
	}
	response.Success(c, items)
	return nil
}

func (n *Note) loadNote(c *gin.Context) (*models.User, *models.Note, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, nil, err
	}
	user, err := currentUser(c, n.AccountService)
	if err != nil {
		return nil, nil, err
	}
	note, err := n.NoteService.GetNote(c.Request.Context(), id)
	if err != nil {
		return nil, nil, bizError(err)
	}
	return user, note, nil
}
