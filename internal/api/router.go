package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shreyansh232/wysa/internal/auth"
)

// NewRouter wires the public auth routes and the token-guarded assessment
// routes. No assessment handler runs before the gate has verified a token.
func NewRouter(app App, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware())

	authRoutes := r.Group("/api/auth")
	authRoutes.POST("/signup", Signup(app))
	authRoutes.POST("/login", Login(app))

	assessment := r.Group("/api/assessment")
	assessment.Use(auth.Middleware(jwtSecret))
	assessment.POST("/start", StartAssessment(app))
	assessment.PATCH("/update", UpdateAssessment(app))
	assessment.POST("/complete", CompleteAssessment(app))

	return r
}
