// Package server is a stand-in for the content API. It serves a fixed
// article list the way the CMS does, for local development and tests.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/mithrel/kbreader/pkg/api"
)

// Server serves the articles endpoint backed by an in-memory fixture.
type Server struct {
	cfg      *viper.Viper
	log      *logrus.Logger
	articles []api.Article
}

func New(cfg *viper.Viper, log *logrus.Logger, articles []api.Article) *Server {
	return &Server{cfg: cfg, log: log, articles: articles}
}

// Router returns an http.Handler with registered routes.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc(s.articlesRoute(), s.handleArticles)
	return mux
}

func (s *Server) articlesRoute() string {
	prefix := strings.TrimRight(s.cfg.GetString("api_prefix"), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix + "/articles"
}

type listResponse struct {
	Data []api.Article `json:"data"`
	Meta listMeta      `json:"meta"`
}

type listMeta struct {
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.articles
	if !populates(r, "category") {
		// Relations are only embedded on request.
		data = make([]api.Article, len(s.articles))
		for i, a := range s.articles {
			a.Category = nil
			data[i] = a
		}
	}
	if data == nil {
		data = []api.Article{}
	}
	resp := listResponse{
		Data: data,
		Meta: listMeta{Pagination: pagination{Page: 1, PageSize: len(data), PageCount: 1, Total: len(data)}},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.WithError(err).Warn("serve: encode articles")
		return
	}
	s.log.WithFields(logrus.Fields{"count": len(data), "query": r.URL.RawQuery}).Debug("serve: articles")
}

func populates(r *http.Request, rel string) bool {
	for _, v := range r.URL.Query()["populate"] {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p == rel || p == "*" {
				return true
			}
		}
	}
	return false
}

// LoadFixture reads articles from a JSON file holding either a bare array
// or the API envelope {"data": [...]}.
func LoadFixture(path string) ([]api.Article, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "[") {
		var out []api.Article
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("parse fixture %s: %w", path, err)
		}
		return out, nil
	}
	var env api.ArticleList
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return env.Data, nil
}
