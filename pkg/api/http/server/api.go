package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/voidshard/easel/internal/utils"
	"github.com/voidshard/easel/pkg/api"
	"github.com/voidshard/easel/pkg/api/http/common"
	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/structs"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	addr     string
	mediaDir string
	tlsCert  string
	tlsKey   string
	debug    bool
	log      zerolog.Logger

	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
}

// ServeForever serves the API until Close is called or the process is interrupted.
func (s *Server) ServeForever(svc api.API) error {
	s.httpserver = &http.Server{
		Handler:      s.Router(svc),
		Addr:         s.addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpserver.Addr).Bool("tls", s.tlsCert != "").Msg("listening")
		var err error
		if s.tlsCert != "" && s.tlsKey != "" {
			s.httpserver.TLSConfig = utils.ServerTLSConfig()
			err = s.httpserver.ListenAndServeTLS(s.tlsCert, s.tlsKey)
		} else {
			err = s.httpserver.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	signal.Notify(s.exit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.exit)

	select {
	case err := <-errs:
		return err
	case <-s.exit:
	}

	s.log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

// Router returns the http handler serving svc.
func (s *Server) Router(svc api.API) http.Handler {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS, s.Jobs).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_JOB, s.Job).Methods(http.MethodGet, http.MethodDelete)
	router.HandleFunc(common.API_CANCEL, s.Cancel).Methods(http.MethodPost)
	router.HandleFunc(common.API_RETRY, s.Retry).Methods(http.MethodPost)
	router.HandleFunc(common.API_WORKBOARDS, s.Workboards).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_WORKBOARD, s.Workboard).Methods(http.MethodGet)
	router.HandleFunc(common.API_MEDIA, s.Media).Methods(http.MethodGet)

	if s.mediaDir != "" {
		s.log.Info().Str("dir", s.mediaDir).Msg("serving media files")
		router.PathPrefix(common.MEDIA_FILES).Handler(
			http.StripPrefix(common.MEDIA_FILES, http.FileServer(http.Dir(s.mediaDir))),
		).Methods(http.MethodGet)
	}

	if s.debug {
		s.log.Debug().Msg("debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware(s.log))
	}

	return router
}

func (s *Server) Jobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getJobs(w, r)
	case http.MethodPost:
		s.submitJob(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) submitJob(w http.ResponseWriter, r *http.Request) {
	req := &structs.SubmitRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}
	if req.WorkboardID != "" && !utils.IsValidID(req.WorkboardID) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: bad workboard id", errors.ErrInvalidArg))
		return
	}

	job, err := s.svc.Submit(r.Context(), req)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusCreated, job)
}

func (s *Server) getJobs(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}

	items, err := s.svc.Jobs(r.Context(), q)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	s.log.Debug().Str("url", r.URL.String()).Int("items", len(items)).Msg("listed jobs")
	writeJson(w, http.StatusOK, items)
}

func (s *Server) Job(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodDelete {
		err := s.svc.Delete(r.Context(), id)
		if err != nil {
			writeError(w, mapError(err), err)
			return
		}
		writeJson(w, http.StatusOK, &common.IDResponse{ID: id})
		return
	}

	view, err := s.svc.Job(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusOK, view)
}

func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := s.svc.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusOK, &common.IDResponse{ID: id})
}

func (s *Server) Retry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := s.svc.Retry(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusCreated, job)
}

func (s *Server) Workboards(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		spec := &structs.WorkboardSpec{}
		err := unmarshalJson(w, r, spec)
		if err != nil {
			return
		}
		wb, err := s.svc.CreateWorkboard(r.Context(), spec)
		if err != nil {
			writeError(w, mapError(err), err)
			return
		}
		writeJson(w, http.StatusCreated, wb)
		return
	}

	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}
	items, err := s.svc.Workboards(r.Context(), q)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusOK, items)
}

func (s *Server) Workboard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	wb, err := s.svc.Workboard(r.Context(), id)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusOK, wb)
}

func (s *Server) Media(w http.ResponseWriter, r *http.Request) {
	// only GET is allowed, so we know what this request is
	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}

	items, err := s.svc.Media(r.Context(), q)
	if err != nil {
		writeError(w, mapError(err), err)
		return
	}
	writeJson(w, http.StatusOK, items)
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

// pathID reads & checks the {id} route variable, writing an error if it is bad.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if !utils.IsValidID(id) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: bad id %q", errors.ErrInvalidArg, id))
		return "", false
	}
	return id, true
}

// NewServer returns a server. Media files under mediaDir are served if it is set, and TLS is
// used if both cert & key are given.
func NewServer(addr, mediaDir, tlsCert, tlsKey string, debug bool, log zerolog.Logger) *Server {
	return &Server{
		addr:     addr,
		mediaDir: mediaDir,
		tlsCert:  tlsCert,
		tlsKey:   tlsKey,
		debug:    debug,
		log:      log.With().Str("component", "http").Logger(),
		exit:     make(chan os.Signal, 1),
	}
}
