package api

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/backlogbot/backlog-bot/internal/domain/backlog"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Config struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// Server exposes read-only bot data over HTTP.
type Server struct {
	app     *fiber.App
	svc     backlog.Service
	version string
	commit  string
}

type userResponse struct {
	ID     string `json:"id"`
	Level  int    `json:"level"`
	Exp    int    `json:"exp"`
	MaxExp int    `json:"max_exp"`
}

type backlogItemResponse struct {
	AppID    int    `json:"app_id"`
	Name     string `json:"name"`
	StoreURL string `json:"store_url"`
	AddedAt  string `json:"added_at"`
}

type gameResponse struct {
	AppID int    `json:"app_id"`
	Name  string `json:"name"`
}

func NewServer(svc backlog.Service, version, commit string) *Server {
	s := &Server{
		svc:     svc,
		version: version,
		commit:  commit,
		app: fiber.New(fiber.Config{
			AppName:               "backlog-bot",
			DisableStartupMessage: true,
		}),
	}

	s.app.Use(recover.New())
	s.app.Use(LoggingMiddleware())

	s.app.Get("/health", s.health)
	api := s.app.Group("/api")
	api.Get("/users/:id", s.user)
	api.Get("/users/:id/backlog", s.backlog)
	api.Get("/games/search", s.search)

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks until the server stops.
func (s *Server) Listen(addr string) error {
	slog.Info("HTTP API listening", slog.String("type", "sys"), slog.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	return SendSuccess(c, fiber.Map{
		"status":  "healthy",
		"version": s.version,
		"commit":  s.commit,
	}, "Health check successful")
}

func (s *Server) user(c *fiber.Ctx) error {
	user, err := s.svc.Account(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}
	return SendSuccess(c, userResponse{
		ID:     user.PlatformID,
		Level:  user.Level,
		Exp:    user.Exp,
		MaxExp: user.MaxExp,
	}, "")
}

func (s *Server) backlog(c *fiber.Ctx) error {
	items, err := s.svc.Backlog(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}

	out := make([]backlogItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, backlogItemResponse{
			AppID:    item.AppID,
			Name:     item.DisplayName,
			StoreURL: backlog.StorePageURL(item.AppID),
			AddedAt:  item.AddedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return SendSuccess(c, out, "")
}

func (s *Server) search(c *fiber.Ctx) error {
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		return SendBadRequest(c, "query parameter q is required")
	}

	result, err := s.svc.Search(c.UserContext(), term)
	if err != nil {
		slog.Error("Search failed", slog.String("type", "sys"), slog.Any("error", err))
		return SendBadGateway(c, "steam catalog unavailable")
	}

	out := make([]gameResponse, 0, len(result.Shown()))
	for _, game := range result.Shown() {
		out = append(out, gameResponse{AppID: game.AppID, Name: game.Name})
	}
	return SendSuccess(c, fiber.Map{
		"matches":     out,
		"total":       len(result.Matches),
		"suggestions": result.Suggestions,
	}, "")
}

func (s *Server) storeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, backlog.ErrStoreNotFound) {
		return SendNotFound(c, "user not found")
	}
	slog.Error("Store request failed", slog.String("type", "db"), slog.Any("error", err))
	return SendInternalServerError(c, "store unavailable")
}
