package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"codeberg.org/snonux/bilinguo/internal/glossary"
	"codeberg.org/snonux/bilinguo/internal/session"
	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var indexHTML []byte

// maxUploadSize limits glossary uploads
const maxUploadSize = 8 << 20

// artifactLimit is how many recent artifacts stay fetchable
const artifactLimit = 64

var logger = log.New(os.Stderr, "[server] ", log.LstdFlags)

// Server exposes a session over HTTP
type Server struct {
	session   *session.Session
	artifacts *artifactStore
	router    *gin.Engine
	maxUpload int64
}

// New creates the HTTP front-end for s
func New(s *session.Session) *Server {
	srv := &Server{
		session:   s,
		artifacts: newArtifactStore(artifactLimit),
		maxUpload: maxUploadSize,
	}
	srv.router = srv.routes()
	return srv
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = maxUploadSize

	router.GET("/", s.index)

	api := router.Group("/api")
	api.GET("/header", s.header)
	api.POST("/glossary", s.upload)
	api.GET("/terms", s.terms)
	api.GET("/search", s.search)
	api.GET("/select", s.selectTerm)
	api.GET("/audio/:id", s.audio)

	return router
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Printf("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) header(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Header())
}

type statusResponse struct {
	Status string   `json:"status"`
	Terms  int      `json:"terms"`
	Labels []string `json:"labels"`
	Error  string   `json:"error,omitempty"`
}

func (s *Server) upload(c *gin.Context) {
	if c.Request.ContentLength > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, statusResponse{Error: "glossary file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, statusResponse{Error: "glossary file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, statusResponse{Error: "missing multipart field \"file\""})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Error: err.Error()})
		return
	}
	defer f.Close()

	status, err := s.session.LoadReader(f, fh.Filename)
	if err != nil {
		code := http.StatusBadRequest
		var loadErr *glossary.LoadError
		if !errors.As(err, &loadErr) {
			code = http.StatusInternalServerError
		}
		c.JSON(code, statusResponse{Status: status.Message, Labels: []string{}, Error: err.Error()})
		return
	}

	logger.Printf("loaded %s: %d terms", fh.Filename, status.Terms)
	c.JSON(http.StatusOK, statusResponse{
		Status: status.Message,
		Terms:  status.Terms,
		Labels: nonNil(status.Labels),
	})
}

func (s *Server) terms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"labels": nonNil(s.session.Filter(c.Query("filter")))})
}

type viewResponse struct {
	ResultA    string `json:"resultA"`
	ResultB    string `json:"resultB"`
	Outcome    string `json:"outcome,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Audio      string `json:"audio,omitempty"`
	AudioError string `json:"audioError,omitempty"`
}

func (s *Server) search(c *gin.Context) {
	view := s.session.Search(c.Request.Context(), c.Query("q"))

	resp := s.viewResponse(view)
	resp.Outcome = view.Lookup.Outcome.String()
	if view.Lookup.Hit() {
		resp.Direction = view.Lookup.Direction.String()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) selectTerm(c *gin.Context) {
	view := s.session.Click(c.Request.Context(), c.Query("label"))
	c.JSON(http.StatusOK, s.viewResponse(view))
}

func (s *Server) viewResponse(view session.View) viewResponse {
	resp := viewResponse{
		ResultA: view.ResultA,
		ResultB: view.ResultB,
	}
	if view.Speech.Available() {
		s.artifacts.put(view.Speech.Artifact)
		resp.Audio = "/api/audio/" + view.Speech.Artifact.ID
	} else if view.Speech.Err != nil {
		resp.AudioError = view.Speech.Err.Error()
	}
	return resp
}

func (s *Server) audio(c *gin.Context) {
	artifact, ok := s.artifacts.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "audio not found"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, artifact.Format.MimeType(), artifact.Data)
}

func nonNil(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}
