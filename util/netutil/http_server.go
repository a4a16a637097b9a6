package netutil

import (
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/net/netutil"

	"github.com/relip/elasticsearch-extended-analyze/util/log"
)

type ServerConfig struct {
	Name      string
	Addr      string // ip:port
	ConnLimit int
}

// Server is a http server
type Server struct {
	cfg    *ServerConfig
	server *http.Server
	router *httprouter.Router
	closed int64
}

// NewServer creates the server with given configuration.
func NewServer(config *ServerConfig) *Server {
	s := &Server{
		cfg:    config,
		router: httprouter.New(),
	}

	s.Handle(http.MethodGet, "/debug/ping", PingPong)
	s.router.HandlerFunc(http.MethodGet, "/debug/pprof/", pprof.Index)
	s.router.HandlerFunc(http.MethodGet, "/debug/pprof/cmdline", pprof.Cmdline)
	s.router.HandlerFunc(http.MethodGet, "/debug/pprof/profile", pprof.Profile)
	s.router.HandlerFunc(http.MethodGet, "/debug/pprof/symbol", pprof.Symbol)
	s.router.HandlerFunc(http.MethodGet, "/debug/pprof/trace", pprof.Trace)

	return s
}

func (s *Server) Handle(method, uri string, handle httprouter.Handle) {
	s.router.Handle(method, uri, handle)
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close closes the server.
func (s *Server) Close() {
	if !atomic.CompareAndSwapInt64(&s.closed, 0, 1) {
		// server is already closed
		return
	}

	if s.server != nil {
		s.server.Close()
	}
}

// isClosed checks whether server is closed or not.
func (s *Server) isClosed() bool {
	return atomic.LoadInt64(&s.closed) == 1
}

// Run runs the server. It blocks until the server is closed.
func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		log.Error("fail to listen:[%v]. err:%v", s.cfg.Addr, err)
		return err
	}
	if s.cfg.ConnLimit > 0 {
		l = netutil.LimitListener(l, s.cfg.ConnLimit)
	}

	s.server = &http.Server{
		Handler: s.router,
	}
	if err = s.server.Serve(l); err != nil {
		if s.isClosed() && err == http.ErrServerClosed {
			return nil
		}
		log.Error("http server %s stopped: %v", s.cfg.Name, err)
		return err
	}
	return nil
}

func (s *Server) Name() string {
	return s.cfg.Name
}

// Error replies to the request with the specified error message and HTTP code.
// The error message should be plain text.
func Error(w http.ResponseWriter, error string, code int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	fmt.Fprintln(w, error)
}

func PingPong(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Write([]byte("ok"))
}
