// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/go-posts/internal/lib/job"
	"github.com/deppfellow/go-posts/internal/repository"
	"github.com/deppfellow/go-posts/internal/server"
)

type Services struct {
	Post *PostService
	Job  *job.JobService
}

// NewServices also installs the Clerk secret key. The SDK keeps it
// process-wide; the auth middleware and the job recipient lookup read it.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	clerk.SetKey(s.Config.Auth.SecretKey)

	return &Services{
		Job:  s.Job,
		Post: newPostServiceFromServer(s, repos),
	}, nil
}
