// Package refapi is an in-process implementation of the Users/Posts/Comments REST API. It
// exists so that the harness can be exercised without a remote service, and can also be run
// on its own with cmd/refapi.
package refapi

import (
	"fmt"
	"io"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// Route names
const (
	ListUsers        = "ListUsers"
	GetUser          = "GetUser"
	CreateUser       = "CreateUser"
	UpdateUser       = "UpdateUser"
	DeleteUser       = "DeleteUser"
	ListPosts        = "ListPosts"
	GetPost          = "GetPost"
	CreatePost       = "CreatePost"
	UpdatePost       = "UpdatePost"
	DeletePost       = "DeletePost"
	ListComments     = "ListComments"
	GetComment       = "GetComment"
	CreateComment    = "CreateComment"
	UpdateComment    = "UpdateComment"
	DeleteComment    = "DeleteComment"
	ListPostComments = "ListPostComments"
)

type Options struct {
	// Token is the bearer token that every request must carry. If empty, requests are not
	// authenticated.
	Token string

	// DSN selects the database; see OpenStore.
	DSN string

	// Logger receives request logs. If nil, nothing is logged.
	Logger *logrus.Logger
}

type Server struct {
	app   *fiber.App
	store *Store
}

// NewServer opens the store and builds the application.
func NewServer(opts Options) (*Server, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	store, err := OpenStore(opts.DSN)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(requestLogger(log))
	if opts.Token != "" {
		app.Use(bearerAuth(opts.Token))
	}
	registerRoutes(app, store)

	return &Server{app: app, store: store}, nil
}

// NOTE: nested routes are registered before /:id routes of the same group.
func registerRoutes(app *fiber.App, store *Store) {
	users := resource[User, userInput]{
		store:      store,
		dependents: []dependent{{model: &Post{}, column: "user_id"}},
	}
	posts := resource[Post, postInput]{
		store:      store,
		dependents: []dependent{{model: &Comment{}, column: "post_id"}},
	}
	comments := resource[Comment, commentInput]{store: store}

	u := app.Group("/users")
	u.Get("/", users.list).Name(ListUsers)
	u.Get("/:id", users.get).Name(GetUser)
	u.Post("/", users.create).Name(CreateUser)
	u.Put("/:id", users.update).Name(UpdateUser)
	u.Delete("/:id", users.delete).Name(DeleteUser)

	p := app.Group("/posts")
	p.Get("/", posts.list).Name(ListPosts)
	p.Get("/:id/comments", comments.listUnder(&Post{}, "post_id")).Name(ListPostComments)
	p.Get("/:id", posts.get).Name(GetPost)
	p.Post("/", posts.create).Name(CreatePost)
	p.Put("/:id", posts.update).Name(UpdatePost)
	p.Delete("/:id", posts.delete).Name(DeletePost)

	c := app.Group("/comments")
	c.Get("/", comments.list).Name(ListComments)
	c.Get("/:id", comments.get).Name(GetComment)
	c.Post("/", comments.create).Name(CreateComment)
	c.Put("/:id", comments.update).Name(UpdateComment)
	c.Delete("/:id", comments.delete).Name(DeleteComment)
}

// App returns the fiber application, e.g. for app.Test in package tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the listener and closes the store.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	return err
}

// TestServer is a Server behind an httptest.Server.
type TestServer struct {
	*httptest.Server
	api *Server
}

// NewTestServer starts the API on a local port with a private in-memory database.
func NewTestServer(token string) (*TestServer, error) {
	api, err := NewServer(Options{Token: token})
	if err != nil {
		return nil, fmt.Errorf("failed to create reference API: %w", err)
	}
	return &TestServer{
		Server: httptest.NewServer(adaptor.FiberApp(api.app)),
		api:    api,
	}, nil
}

// Close stops the HTTP server and discards the database.
func (ts *TestServer) Close() {
	ts.Server.Close()
	_ = ts.api.store.Close()
}
