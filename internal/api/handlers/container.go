package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/idempotency"
)

type Handlers struct {
	Form       *FormHandler
	Submission *SubmissionHandler
	Upload     *UploadHandler
	Router     *gin.Engine
}

func New(svc *application.Services, replay idempotency.Store, router *gin.Engine) *Handlers {
	return &Handlers{
		Form:       NewFormHandler(svc.Form),
		Submission: NewSubmissionHandler(svc.Submission, replay),
		Upload:     NewUploadHandler(svc.Upload),
		Router:     router,
	}
}
