package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chetan-code/planner/internal/auth"
)

// Routes wires both surfaces onto one router. The JSON and HTML groups
// share the resolver and the service; they differ only in how a request
// proves who it is and how failures come back.
func Routes(api *APIHandler, web *WebHandler, resolver *auth.Resolver) http.Handler {
	r := chi.NewRouter()

	//JSON surface: registration, login and the share link are public
	r.Post("/token", api.Token)
	r.Post("/users/", api.CreateUser)
	r.Get("/share/tasks/{user_id}/{date}", api.SharedTasks)
	r.Group(func(pr chi.Router) {
		pr.Use(Authenticated(resolver, api.Unauthorized))
		pr.Get("/users/me", api.Me)
		pr.Post("/tasks/", api.CreateTask)
		pr.Get("/tasks/", api.ListTasks)
		pr.Get("/tasks/{date}", api.TasksByDate)
		pr.Patch("/tasks/{id}/complete", api.CompleteTask)
		pr.Put("/tasks/{id}", api.UpdateTask)
		pr.Get("/history/", api.History)
	})

	//HTML surface: token rides in an httponly cookie
	r.Get("/register", web.RegisterForm)
	r.Post("/register", web.Register)
	r.Get("/login", web.LoginForm)
	r.Post("/login", web.Login)
	r.Get("/logout", web.Logout)
	r.Get("/share/{user_id}/{date}", web.Share)
	r.Get("/", HomeRedirect)
	r.Group(func(pr chi.Router) {
		pr.Use(Authenticated(resolver, web.LoginRedirect))
		pr.Get("/tasks", web.Tasks)
		pr.Post("/tasks", web.AddTask)
		pr.Post("/tasks/{id}/complete", web.CompleteTask)
	})

	return r
}
