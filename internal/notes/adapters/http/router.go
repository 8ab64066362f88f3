// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"gonotes/internal/notes/adapters/http/auth"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/notes"
	"gonotes/internal/notes/adapters/http/users"
	"gonotes/internal/notes/config"
	"gonotes/internal/notes/ports/api"
)

// UseCases объединяет входные порты, которые обслуживает HTTP сервер.
type UseCases struct {
	Auth       api.AuthUseCase
	Users      api.UserUseCase
	Notes      api.NoteUseCase
	Authorizer api.Authorizer
}

// NewApp создает fiber приложение с общим обработчиком ошибок.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      config.ServiceName,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, uc UseCases) {
	authHandler := auth.NewHandler(uc.Auth)
	usersHandler := users.NewHandler(uc.Auth, uc.Users)
	notesHandler := notes.NewHandler(uc.Notes)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New())

	apiRoutes := app.Group("/api")

	apiRoutes.Post("/login", authHandler.Login)

	userRoutes := apiRoutes.Group("/users")
	userRoutes.Post("/", usersHandler.CreateUser)
	userRoutes.Get("/", usersHandler.ListUsers)
	userRoutes.Get("/:id", usersHandler.GetUser)

	// Только создание заметки требует токена.
	notesRoutes := apiRoutes.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote, middleware.NewAuthMiddleware(uc.Authorizer))
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": MsgUnknownEndpoint,
		})
	})
}
