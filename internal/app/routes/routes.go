package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusconnect/backend/internal/app/controllers"
	"github.com/campusconnect/backend/internal/middleware"
	"github.com/campusconnect/backend/internal/pkg/websocket"
)

// Controllers bundles the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	Group      *controllers.GroupController
	Club       *controllers.ClubController
	Event      *controllers.EventController
	Connection *controllers.ConnectionController
	Alumni     *controllers.AlumniController
	Project    *controllers.ProjectController
	Admin      *controllers.AdminController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	notifications *websocket.Handler,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", ctrl.Health.Health)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", ctrl.Auth.Signup)
		auth.POST("/signup-alumni", ctrl.Auth.SignupAlumni)
		auth.POST("/login", ctrl.Auth.Login)
	}

	v1.GET("/notifications/ws", authMiddleware.WebsocketAuth(), notifications.HandleConnection)

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", ctrl.Auth.Me)
		authenticated.PUT("/auth/me", ctrl.Auth.UpdateMe)

		groups := authenticated.Group("/groups")
		{
			groups.GET("", ctrl.Group.List)
			groups.GET("/my-groups", ctrl.Group.MyGroups)
			groups.POST("", ctrl.Group.Create)
			groups.GET("/:id", ctrl.Group.Get)
			groups.PUT("/:id", ctrl.Group.Update)
			groups.DELETE("/:id", ctrl.Group.Delete)
			groups.POST("/:id/join", ctrl.Group.Join)
			groups.POST("/:id/leave", ctrl.Group.Leave)
			groups.GET("/:id/members", ctrl.Group.Members)
		}

		clubs := authenticated.Group("/clubs")
		{
			clubs.GET("", ctrl.Club.List)
			clubs.POST("", ctrl.Club.Create)
			clubs.GET("/:id", ctrl.Club.Get)
			clubs.PUT("/:id", ctrl.Club.Update)
			clubs.DELETE("/:id", ctrl.Club.Delete)

			clubs.GET("/:id/members", ctrl.Club.Members)
			clubs.POST("/:id/members", ctrl.Club.AddMember)
			clubs.DELETE("/:id/members/:userId", ctrl.Club.RemoveMember)
			clubs.POST("/:id/join", ctrl.Club.Join)
			clubs.POST("/:id/leave", ctrl.Club.Leave)

			clubs.GET("/:id/posts", ctrl.Club.Posts)
			clubs.POST("/:id/posts", ctrl.Club.CreatePost)
			clubs.DELETE("/:id/posts/:postId", ctrl.Club.DeletePost)
		}

		events := authenticated.Group("/events")
		{
			events.GET("", ctrl.Event.List)
			events.GET("/my-events", ctrl.Event.MyEvents)
			events.POST("", ctrl.Event.Create)
			events.GET("/:id", ctrl.Event.Get)
			events.POST("/:id/rsvp", ctrl.Event.RSVP)
			events.DELETE("/:id/rsvp", ctrl.Event.CancelRSVP)
		}

		// Students send requests; only the addressed alumni resolves them
		connections := authenticated.Group("/connections")
		{
			connections.GET("/sent", ctrl.Connection.Sent)
			connections.POST("/:alumniId", ctrl.Connection.Request)

			alumniOnly := connections.Group("", authMiddleware.AlumniRequired())
			alumniOnly.GET("/incoming", ctrl.Connection.Incoming)
			alumniOnly.PUT("/:id/accept", ctrl.Connection.Accept)
			alumniOnly.PUT("/:id/reject", ctrl.Connection.Reject)
		}

		alumni := authenticated.Group("/alumni")
		{
			alumni.GET("", ctrl.Alumni.List)
			alumni.PUT("/profile", authMiddleware.AlumniRequired(), ctrl.Alumni.UpdateProfile)
			alumni.GET("/:id", ctrl.Alumni.Get)
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("", ctrl.Project.List)
			projects.GET("/my-projects", ctrl.Project.MyProjects)
			projects.POST("", ctrl.Project.Create)
			projects.GET("/:id", ctrl.Project.Get)
			projects.PUT("/:id", ctrl.Project.Update)
			projects.DELETE("/:id", ctrl.Project.Delete)
			projects.POST("/:id/apply", ctrl.Project.Apply)
			projects.POST("/:id/leave", ctrl.Project.Leave)
			projects.GET("/:id/applications", ctrl.Project.Applications)
			projects.POST("/:id/applications/:applicantId/approve", ctrl.Project.Approve)
			projects.POST("/:id/applications/:applicantId/reject", ctrl.Project.Reject)
		}

		admin := authenticated.Group("/admin", authMiddleware.AdminRequired())
		{
			admin.GET("/stats", ctrl.Admin.Stats)

			admin.GET("/users", ctrl.Admin.Users)
			admin.PUT("/users/:id/ban", ctrl.Admin.BanUser)
			admin.PUT("/users/:id/unban", ctrl.Admin.UnbanUser)
			admin.DELETE("/users/:id", ctrl.Admin.DeleteUser)

			admin.GET("/groups", ctrl.Admin.Groups)
			admin.DELETE("/groups/:id", ctrl.Admin.DeleteGroup)

			admin.GET("/clubs", ctrl.Admin.Clubs)
			admin.PUT("/clubs/:id/approve", ctrl.Admin.ApproveClub)
			admin.PUT("/clubs/:id/deny", ctrl.Admin.DenyClub)
			admin.DELETE("/clubs/:id", ctrl.Admin.DeleteClub)
			admin.POST("/clubs/:id/members", ctrl.Admin.AddClubMember)
			admin.DELETE("/clubs/:id/members/:userId", ctrl.Admin.RemoveClubMember)

			admin.GET("/events", ctrl.Admin.Events)
			admin.PUT("/events/:id/approve", ctrl.Admin.ApproveEvent)
			admin.PUT("/events/:id/deny", ctrl.Admin.DenyEvent)
			admin.DELETE("/events/:id", ctrl.Admin.DeleteEvent)
		}
	}
}
