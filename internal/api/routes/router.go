package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/handlers"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/idempotency"
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
)

func RegisterRoutes(r *gin.Engine, repos *repository.Repos, objects storage.ObjectStore, replay idempotency.Store) *handlers.Handlers {
	// init
	services_instance := application.New(repos, objects)
	handlers_instance := handlers.New(services_instance, replay, r)

	api := r.Group("/api/form")
	api.Use(middleware.OptionalJWT())
	{
		// answering
		api.GET("/answer/:formID", handlers_instance.Form.GetForm)
		api.POST("/answer/:formID", handlers_instance.Submission.SubmitAnswers)
		api.GET("/answers/:formID/:submissionID", handlers_instance.Submission.GetSubmission)
		api.GET("/:formID/submissions", handlers_instance.Submission.ListSubmissions)
		api.GET("/list", handlers_instance.Form.ListForms)
		api.GET("/:formID/components", handlers_instance.Form.ListComponents)
		api.POST("/upload", handlers_instance.Upload.Upload)
	}

	// form management
	manage := api.Group("")
	if config.ManagementAuthRequired {
		manage.Use(middleware.JWTAuthMiddleware())
	}
	{
		manage.POST("/clear/:formID", handlers_instance.Submission.ClearForm)
		manage.POST("/create", handlers_instance.Form.CreateForm)
		manage.PUT("/rename/:formID", handlers_instance.Form.RenameForm)
		manage.PUT("/publish/:formID", handlers_instance.Form.PublishForm)
		manage.DELETE("/delete/:formID", handlers_instance.Form.DeleteForm)
		manage.POST("/components", handlers_instance.Form.CreateComponent)
	}

	return handlers_instance
}
