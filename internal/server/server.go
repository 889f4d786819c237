// Package server exposes the citation resolver and document pipeline
// over HTTP: single-citation lookup, multi-option search, docx
// processing with session-backed download, and single-note updates.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mhutchens/citator/internal/citation"
	"github.com/mhutchens/citator/internal/format"
	"github.com/mhutchens/citator/internal/pipeline"
)

const (
	// maxUploadBytes caps document uploads at 16 MiB.
	maxUploadBytes = 16 << 20

	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Resolver is the citation lookup surface the server drives.
// *router.Router satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, query string) (*citation.Metadata, citation.DetectionResult)
	ResolveMultiple(ctx context.Context, query string, limit int) []*citation.Metadata
}

// Server wires the HTTP API around a resolver. Document runs build a
// fresh pipeline per request so per-request options (link styling)
// never leak between uploads.
type Server struct {
	resolver Resolver
	sessions *Sessions
	version  string
	debug    bool
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version string reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithDebug keeps gin in debug mode with request logging.
func WithDebug() Option {
	return func(s *Server) { s.debug = true }
}

// New builds a Server over the given resolver.
func New(r Resolver, opts ...Option) *Server {
	s := &Server{
		resolver: r,
		sessions: NewSessions(),
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if !s.debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/cite", s.cite)
	api.POST("/cite/multiple", s.citeMultiple)
	api.POST("/process", s.process)
	api.GET("/results/:id", s.results)
	api.GET("/download/:id", s.download)
	api.POST("/update", s.update)

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	defer s.sessions.Close()
	return s.Router().Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

type citeRequest struct {
	Text  string `json:"text"`
	Style string `json:"style"`
	Limit int    `json:"limit"`
}

func (s *Server) cite(c *gin.Context) {
	var req citeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}

	meta, det := s.resolver.Resolve(c.Request.Context(), req.Text)
	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "citation not found",
			"type":  det.Type,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"citation": format.ForStyle(req.Style).Format(meta),
		"type":     meta.Type,
		"source":   meta.SourceEngine,
		"metadata": meta,
	})
}

func (s *Server) citeMultiple(c *gin.Context) {
	var req citeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > 10 {
		limit = 10
	}

	f := format.ForStyle(req.Style)
	options := s.resolver.ResolveMultiple(c.Request.Context(), req.Text, limit)
	views := make([]gin.H, 0, len(options))
	for _, m := range options {
		views = append(views, gin.H{
			"citation": f.Format(m),
			"type":     m.Type,
			"source":   m.SourceEngine,
			"metadata": m,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "options": views})
}

func (s *Server) process(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".docx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .docx files are supported"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	if len(data) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document exceeds the 16 MiB limit"})
		return
	}

	style := c.DefaultPostForm("style", "chicago")
	var opts []pipeline.Option
	if c.DefaultPostForm("links", "true") != "false" {
		opts = append(opts, pipeline.WithLinkStyling())
	}

	out, results, err := pipeline.New(s.resolver, opts...).Process(c.Request.Context(), data, style)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("processing document: %v", err)})
		return
	}

	id := s.sessions.Create(Session{
		Filename: file.Filename,
		Style:    style,
		Doc:      out,
		Results:  results,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": id,
		"notes":      noteViews(results),
		"stats":      pipeline.Summarize(results),
	})
}

// noteViews shapes results for the review UI: the formatted text falls
// back to the original for failed markers, mirroring what is actually
// in the document.
func noteViews(results []pipeline.ProcessedCitation) []gin.H {
	views := make([]gin.H, 0, len(results))
	for _, r := range results {
		text := r.Formatted
		if !r.Success {
			text = r.Original
		}
		typ := citation.Unknown
		if r.Metadata != nil {
			typ = r.Metadata.Type
		}
		views = append(views, gin.H{
			"kind":      r.Kind,
			"id":        r.NoteID,
			"original":  r.Original,
			"formatted": text,
			"type":      typ,
			"success":   r.Success,
			"form":      r.Form,
		})
	}
	return views
}

func (s *Server) results(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": sess.Results})
}

func (s *Server) download(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	name := sess.Filename
	if name == "" {
		name = "processed.docx"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "citator_"+name))
	c.Data(http.StatusOK, docxMIME, sess.Doc)
}

type updateRequest struct {
	SessionID string `json:"session_id"`
	NoteType  string `json:"note_type"`
	NoteID    int    `json:"note_id"`
	Text      string `json:"text"`
	Style     string `json:"style"`
}

// update re-renders a single note from new query text. The stored
// document and the matching result record are replaced; other notes
// and their earlier ibid/short decisions are left as processed.
func (s *Server) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" || req.NoteID == 0 || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_id, note_id, or text"})
		return
	}
	if req.NoteType == "" {
		req.NoteType = pipeline.KindEndnote
	}

	sess, ok := s.sessions.Get(req.SessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or expired"})
		return
	}
	style := req.Style
	if style == "" {
		style = sess.Style
	}

	out, rec, err := pipeline.New(s.resolver).UpdateNote(c.Request.Context(), sess.Doc, req.NoteType, req.NoteID, req.Text, style)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": fmt.Sprintf("updating note: %v", err)})
		return
	}

	s.sessions.Update(req.SessionID, func(sess *Session) {
		sess.Doc = out
		results := append([]pipeline.ProcessedCitation(nil), sess.Results...)
		for i := range results {
			if results[i].Kind == req.NoteType && results[i].NoteID == req.NoteID {
				results[i] = rec
				break
			}
		}
		sess.Results = results
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"note_id":   req.NoteID,
		"formatted": rec.Formatted,
	})
}
