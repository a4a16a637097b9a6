package server

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/relip/elasticsearch-extended-analyze/kernel/analyze"
	"github.com/relip/elasticsearch-extended-analyze/util/json"
	"github.com/relip/elasticsearch-extended-analyze/util/log"
	"github.com/relip/elasticsearch-extended-analyze/util/netutil"
)

type ApiServer struct {
	httpServer *netutil.Server
	service    *analyze.Service
}

func NewApiServer(cfg *Config, service *analyze.Service) *ApiServer {
	s := &ApiServer{
		httpServer: netutil.NewServer(&netutil.ServerConfig{
			Name:      cfg.ModuleCfg.Name + "-api",
			Addr:      fmt.Sprintf("%s:%d", cfg.ModuleCfg.Ip, cfg.ModuleCfg.HttpPort),
			ConnLimit: cfg.ModuleCfg.ConnLimit,
		}),
		service: service,
	}
	s.initHandler()
	return s
}

func (s *ApiServer) initHandler() {
	s.httpServer.Handle(http.MethodGet, "/_analyze", s.handleAnalyze)
	s.httpServer.Handle(http.MethodPost, "/_analyze", s.handleAnalyze)
	s.httpServer.Handle(http.MethodGet, "/_analyzers", s.handleListAnalyzers)
	s.httpServer.Handle(http.MethodPut, "/_analyzers/:name", s.handleDefineAnalyzer)
	s.httpServer.Handle(http.MethodGet, "/_analyzers/:name", s.handleGetAnalyzer)
	s.httpServer.Handle(http.MethodDelete, "/_analyzers/:name", s.handleDeleteAnalyzer)
	s.httpServer.Handle(http.MethodPut, "/_mapping", s.handlePutMapping)
	s.httpServer.Handle(http.MethodGet, "/_mapping", s.handleGetMapping)
}

func (s *ApiServer) Run() error {
	return s.httpServer.Run()
}

func (s *ApiServer) Close() {
	s.httpServer.Close()
}

func (s *ApiServer) handleAnalyze(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req, err := parseAnalyzeRequest(r)
	if err != nil {
		sendError(w, err)
		return
	}
	resp, err := s.service.Analyze(req)
	if err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, resp)
}

func (s *ApiServer) handleDefineAnalyzer(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	name := params.ByName("name")
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		sendError(w, err)
		return
	}
	def := &analyze.Definition{}
	if err = json.Unmarshal(body, def); err != nil {
		sendError(w, err)
		return
	}
	if def.Name == "" {
		def.Name = name
	}
	if def.Name != name {
		sendError(w, fmt.Errorf("definition name [%s] does not match url name [%s]", def.Name, name))
		return
	}
	if err = s.service.DefineAnalyzer(def); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"acknowledged": true})
}

func (s *ApiServer) handleGetAnalyzer(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	name := params.ByName("name")
	def, ok := s.service.Analyzer(name)
	if !ok {
		sendError(w, &analyze.NotFoundError{Kind: "analyzer", Name: name})
		return
	}
	sendJSON(w, http.StatusOK, def)
}

func (s *ApiServer) handleListAnalyzers(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	sendJSON(w, http.StatusOK, s.service.Analyzers())
}

func (s *ApiServer) handleDeleteAnalyzer(w http.ResponseWriter, _ *http.Request, params httprouter.Params) {
	if err := s.service.DeleteAnalyzer(params.ByName("name")); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"acknowledged": true})
}

func (s *ApiServer) handlePutMapping(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		sendError(w, err)
		return
	}
	if err = s.service.PutMapping(body); err != nil {
		sendError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"acknowledged": true})
}

func (s *ApiServer) handleGetMapping(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	raw := s.service.MappingJSON()
	if raw == nil {
		raw = []byte("{}")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// parseAnalyzeRequest reads the JSON body, then lets query parameters
// override it. text may repeat; list parameters are comma separated.
func parseAnalyzeRequest(r *http.Request) (*analyze.Request, error) {
	req := &analyze.Request{}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		if err = json.Unmarshal(body, req); err != nil {
			return nil, fmt.Errorf("decode analyze request: %v", err)
		}
	}

	q := r.URL.Query()
	if texts, ok := q["text"]; ok {
		req.Text = texts
	}
	if v := q.Get("analyzer"); v != "" {
		req.Analyzer = v
	}
	if v := q.Get("field"); v != "" {
		req.Field = v
	}
	if v := q.Get("tokenizer"); v != "" {
		req.Tokenizer = v
	}
	if v := q.Get("char_filters"); v != "" {
		req.CharFilters = strings.Split(v, ",")
	}
	if v := q.Get("token_filters"); v != "" {
		req.TokenFilters = strings.Split(v, ",")
	}
	if v := q.Get("attributes"); v != "" {
		req.Attributes = strings.Split(v, ",")
	}
	if v := q.Get("short_attribute_names"); v != "" {
		short, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("short_attribute_names: %v", err)
		}
		req.ShortAttributeNames = short
	}
	return req, nil
}

func sendJSON(w http.ResponseWriter, code int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("encode response failed: %v", err)
		netutil.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

func sendError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	var notFound *analyze.NotFoundError
	var storeErr *analyze.StoreError
	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &storeErr):
		code = http.StatusInternalServerError
	}
	sendJSON(w, code, map[string]string{"error": err.Error()})
}
