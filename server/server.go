package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fintalk/logger"
	"fintalk/narration"
	"fintalk/pipeline"
	"fintalk/roundtable"
)

// Runner is the part of pipeline.Runner the server needs.
type Runner interface {
	RunInDir(ctx context.Context, topic, dir string) (*pipeline.Outcome, error)
}

type Server struct {
	runner    Runner
	outputDir string
	logger    zerolog.Logger
	store     *runStore

	// 同一时间只跑一场讨论，不排队。
	busy sync.Mutex
}

type runStore struct {
	mu   sync.Mutex
	runs map[string]*pipeline.Outcome
}

func newStore() *runStore {
	return &runStore{runs: make(map[string]*pipeline.Outcome)}
}

func (s *runStore) set(id string, out *pipeline.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = out
}

func (s *runStore) get(id string) (*pipeline.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, ok := s.runs[id]
	return out, ok
}

func New(runner Runner, outputDir string, log zerolog.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("pipeline runner required")
	}
	return &Server{
		runner:    runner,
		outputDir: outputDir,
		logger:    log,
		store:     newStore(),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Gin(s.logger))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.POST("/discussions", s.handleCreate)
	api.GET("/discussions/:id", s.handleGet)
	api.GET("/discussions/:id/files/:name", s.handleFile)
	return r
}

// --- Handlers ---

type createReq struct {
	Topic string `json:"topic"`
}

type narrationResp struct {
	Segment roundtable.Segment `json:"segment"`
	Voice   string             `json:"voice"`
	File    string             `json:"file,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type discussionResp struct {
	ID        string            `json:"id"`
	Result    roundtable.Result `json:"result"`
	Reports   []string          `json:"reports"`
	Narration []narrationResp   `json:"narration"`
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if err := roundtable.ValidateTopic(req.Topic); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	if !s.busy.TryLock() {
		respondError(c, http.StatusConflict, ErrCodeConflict, "a discussion is already running")
		return
	}
	defer s.busy.Unlock()

	id := uuid.NewString()
	out, err := s.runner.RunInDir(c.Request.Context(), req.Topic, filepath.Join(s.outputDir, id))
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, roundtable.ErrTopicTooShort):
			respondError(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
			return
		case errors.Is(err, pipeline.ErrExport):
			respondError(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
		respondError(c, http.StatusBadGateway, ErrCodeUpstream, err.Error())
		return
	}
	s.store.set(id, out)
	c.JSON(http.StatusCreated, toResp(id, out))
}

func (s *Server) handleGet(c *gin.Context) {
	id := c.Param("id")
	out, ok := s.store.get(id)
	if !ok {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "discussion not found")
		return
	}
	c.JSON(http.StatusOK, toResp(id, out))
}

func (s *Server) handleFile(c *gin.Context) {
	id := c.Param("id")
	out, ok := s.store.get(id)
	if !ok {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "discussion not found")
		return
	}
	name := c.Param("name")
	for _, p := range producedFiles(out) {
		if filepath.Base(p) == name {
			c.File(p)
			return
		}
	}
	respondError(c, http.StatusNotFound, ErrCodeNotFound, "file not found")
}

// --- Helpers ---

func producedFiles(out *pipeline.Outcome) []string {
	files := append([]string(nil), out.Reports...)
	for _, n := range out.Narration {
		if n.OK() {
			files = append(files, n.Path)
		}
	}
	return files
}

func toResp(id string, out *pipeline.Outcome) discussionResp {
	resp := discussionResp{ID: id, Result: out.Result, Reports: []string{}, Narration: []narrationResp{}}
	for _, p := range out.Reports {
		resp.Reports = append(resp.Reports, fileURL(id, p))
	}
	for _, n := range out.Narration {
		resp.Narration = append(resp.Narration, toNarrationResp(id, n))
	}
	return resp
}

func toNarrationResp(id string, n narration.Result) narrationResp {
	r := narrationResp{Segment: n.Segment, Voice: n.Voice}
	if n.OK() {
		r.File = fileURL(id, n.Path)
	} else {
		r.Error = n.Err.Error()
	}
	return r
}

func fileURL(id, path string) string {
	return "/api/discussions/" + id + "/files/" + filepath.Base(path)
}
