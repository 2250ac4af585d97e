package application

import (
	"github.com/linskybing/formflow/internal/repository"
	"github.com/linskybing/formflow/internal/storage"
)

type Services struct {
	Form       *FormService
	Submission *SubmissionService
	Upload     *UploadService
}

func New(repos *repository.Repos, objects storage.ObjectStore) *Services {
	return &Services{
		Form:       NewFormService(repos),
		Submission: NewSubmissionService(repos),
		Upload:     NewUploadService(repos, objects),
	}
}
