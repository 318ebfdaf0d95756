package api

import (
	"github.com/shreyansh232/wysa/internal"
	"github.com/shreyansh232/wysa/internal/service"
)

type App interface {
	Logger() internal.Logger
	Auth() *service.AuthService
	Assessments() *service.AssessmentService
}

type Server struct {
	logger      internal.Logger
	auth        *service.AuthService
	assessments *service.AssessmentService
}

func NewServer(logger internal.Logger, auth *service.AuthService, assessments *service.AssessmentService) *Server {
	return &Server{logger: logger, auth: auth, assessments: assessments}
}

func (s *Server) Logger() internal.Logger                 { return s.logger }
func (s *Server) Auth() *service.AuthService              { return s.auth }
func (s *Server) Assessments() *service.AssessmentService { return s.assessments }
