package handlers

import (
	"github.com/labstack/echo/v4"
)

type Services struct {
	Auth     AuthService
	Users    UserService
	Uploader Uploader
	Store    Pinger
	Sessions *Sessions
}

func Mount(server *echo.Echo, s *Services) {
	server.HTTPErrorHandler = ErrorHandler(server)
	server.Use(s.Sessions.Load)

	server.GET("/register", RegisterForm())
	server.POST("/register", Register(s.Auth))
	server.GET("/login", LoginForm())
	server.POST("/login", Login(s.Auth, s.Sessions))
	server.GET("/logout", Logout(s.Sessions))
	server.GET("/healthz", Health(s.Store))

	server.GET("/", Index(s.Users), RequireAuth)
	server.GET("/profile", Profile(s.Users), RequireAuth)
	server.GET("/users/update/:id", UpdateForm(s.Users), RequireAuth)
	server.POST("/users/update/:id", Update(s.Users, s.Uploader), RequireAuth)
	server.POST("/users/delete/:id", Delete(s.Users), RequireAuth)
}
