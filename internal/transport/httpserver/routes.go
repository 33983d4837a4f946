package httpserver

import (
	"net/http"
	"time"

	"roomie-app-go/internal/auth"
	"roomie-app-go/internal/config"
	"roomie-app-go/internal/transport/httpserver/handler"
	authmw "roomie-app-go/internal/transport/httpserver/middleware"
	"roomie-app-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens *auth.JWTManager, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	// the timeout must stay above the poll cap or long polls get cut off
	r.Use(chimw.Timeout(cfg.Chat.MaxPollTimeout + 5*time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))
	r.Use(authmw.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/register", handlers.Register)
		r.Post("/login", handlers.Login)

		jwtAuth := authmw.NewJWTAuth(tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)

			r.Get("/me", handlers.Me)

			r.Get("/rooms", handlers.ListRooms)
			r.Post("/rooms", handlers.CreateRoom)
			r.Post("/rooms/join", handlers.JoinRoom)
			r.Delete("/rooms/{room_id}", handlers.DeleteRoom)
			r.Post("/rooms/{room_id}/leave", handlers.LeaveRoom)
			r.Get("/rooms/{room_id}/members", handlers.ListRoomMembers)
			r.Get("/rooms/{room_id}/users", handlers.ListRoomUsers)
			r.Post("/rooms/{room_id}/ban/{user_id}", handlers.BanMember)
			r.Post("/rooms/{room_id}/unban/{user_id}", handlers.UnbanMember)
			r.Delete("/rooms/{room_id}/kick/{user_id}", handlers.KickMember)

			r.Get("/rooms/{room_id}/tasks", handlers.ListTasks)
			r.Post("/rooms/{room_id}/tasks", handlers.CreateTask)
			r.Put("/rooms/{room_id}/tasks/{task_id}", handlers.UpdateTask)
			r.Delete("/rooms/{room_id}/tasks/{task_id}", handlers.DeleteTask)

			r.Get("/rooms/{room_id}/shopping", handlers.ListShoppingItems)
			r.Post("/rooms/{room_id}/shopping", handlers.CreateShoppingItem)
			r.Put("/rooms/{room_id}/shopping/{item_id}", handlers.UpdateShoppingItem)
			r.Delete("/rooms/{room_id}/shopping/{item_id}", handlers.DeleteShoppingItem)

			r.Get("/rooms/{room_id}/cleaning", handlers.ListCleaningSchedules)
			r.Post("/rooms/{room_id}/cleaning", handlers.CreateCleaningSchedule)
			r.Put("/rooms/{room_id}/cleaning/{schedule_id}", handlers.UpdateCleaningSchedule)
			r.Delete("/rooms/{room_id}/cleaning/{schedule_id}", handlers.DeleteCleaningSchedule)

			r.Get("/rooms/{room_id}/messages", handlers.ListMessages)
			r.Post("/rooms/{room_id}/messages", handlers.SendMessage)
			r.Get("/rooms/{room_id}/messages/poll", handlers.PollMessages)
		})
	})

	return r
}
