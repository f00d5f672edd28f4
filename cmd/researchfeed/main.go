package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"researchfeed/pkg/comments"
	"researchfeed/pkg/composer"
	"researchfeed/pkg/handlers"
	"researchfeed/pkg/middleware"
	"researchfeed/pkg/posts"
	"researchfeed/pkg/studio"
	"researchfeed/pkg/users"
)

func main() {
	app := &Application{
		ServerAddr: "127.0.0.1:8000",
	}

	flag.StringVar(&app.ServerAddr, "addr", app.ServerAddr, "address to listen on")
	flag.Parse()

	app.Run()
}

type Application struct {
	ServerAddr string

	HTTPServer *http.Server
}

func (a *Application) Run() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync() // flushes buffer, if any
	logger := zapLogger.Sugar()

	usersRepo := users.NewRepo()
	feedRepo := posts.NewMemoryFeedRepo()
	commentsRepo := comments.NewRepo()

	localUser := seedSampleData(usersRepo, feedRepo, commentsRepo)

	studioManager := studio.NewManager(logger)
	defer studioManager.CloseAll()

	drafts := composer.NewManager()
	hubs := studio.NewHubRegistry(logger)
	defer hubs.StopAll()

	feedHandler := &handlers.FeedHandler{
		FeedRepo:     feedRepo,
		UsersRepo:    usersRepo,
		CommentsRepo: commentsRepo,
		LocalUser:    localUser,
		Logger:       logger,
	}

	commentHandler := &handlers.CommentHandler{
		CommentsRepo: commentsRepo,
		FeedRepo:     feedRepo,
		UsersRepo:    usersRepo,
		LocalUser:    localUser,
		Logger:       logger,
	}

	studioHandler := &handlers.StudioHandler{
		Manager:   studioManager,
		Drafts:    drafts,
		FeedRepo:  feedRepo,
		LocalUser: localUser,
		Logger:    logger,
	}

	composerHandler := &handlers.ComposerHandler{
		Drafts:    drafts,
		FeedRepo:  feedRepo,
		LocalUser: localUser,
		Logger:    logger,
	}

	templateHandler := &handlers.TemplateHandler{Logger: logger}

	presentHandler := &handlers.PresentHandler{
		Hubs:     hubs,
		FeedRepo: feedRepo,
		Logger:   logger,
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/").Subrouter()

	api.HandleFunc("/posts/", feedHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/posts/{tag}", feedHandler.GetByTag).Methods(http.MethodGet)
	api.HandleFunc("/post/{id}", feedHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/post/{id}", feedHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/post/{post_id}/like", feedHandler.Like).Methods(http.MethodPost)
	api.HandleFunc("/post/{post_id}/bookmark", feedHandler.Bookmark).Methods(http.MethodPost)
	api.HandleFunc("/user/{username}", feedHandler.GetByUser).Methods(http.MethodGet)

	api.HandleFunc("/post/{post_id}/comments", commentHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/post/{post_id}/comments/{comment_id}", commentHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/post/{post_id}/present/ws", presentHandler.Connect).Methods(http.MethodGet)

	api.HandleFunc("/templates", templateHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/templates/{post_type}", templateHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/studio", studioHandler.Open).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}", studioHandler.GetState).Methods(http.MethodGet)
	api.HandleFunc("/studio/{id}", studioHandler.CloseSession).Methods(http.MethodDelete)
	api.HandleFunc("/studio/{id}/close/cancel", studioHandler.CancelClose).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/template", studioHandler.ChooseTemplate).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/title", studioHandler.SetTitle).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/add", studioHandler.AddSlide).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/duplicate", studioHandler.DuplicateSlide).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/remove", studioHandler.RemoveSlide).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/move", studioHandler.MoveSlide).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/field", studioHandler.UpdateField).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/layout", studioHandler.SetLayout).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/theme", studioHandler.SetTheme).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/slide/starter", studioHandler.InsertStarterContent).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/select", studioHandler.SelectSlide).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/edit", studioHandler.InlineEdit).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/mode", studioHandler.SetMode).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/key", studioHandler.HandleKey).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/export", studioHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/studio/{id}/publish", studioHandler.Publish).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/publish/cancel", studioHandler.CancelPublish).Methods(http.MethodPost)
	api.HandleFunc("/studio/{id}/attach", studioHandler.Attach).Methods(http.MethodPost)

	api.HandleFunc("/drafts", composerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}", composerHandler.GetState).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{id}", composerHandler.Discard).Methods(http.MethodDelete)
	api.HandleFunc("/drafts/{id}/content", composerHandler.SetContent).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}/tag", composerHandler.ToggleTag).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}/posttype", composerHandler.SetPostType).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}/quick-template", composerHandler.UseQuickTemplate).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}/attachment", composerHandler.AddAttachment).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{id}/submit", composerHandler.Submit).Methods(http.MethodPost)

	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteResponse(w, "not found", http.StatusNotFound)
	})

	handler := middleware.Log(logger, r)
	handler = middleware.Recover(logger, handler)

	srv := &http.Server{
		Handler:      handler,
		Addr:         a.ServerAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	a.HTTPServer = srv

	logger.Infof("Started server at %s", srv.Addr)
	log.Fatal(srv.ListenAndServe())
}
