package httpserver

import (
	"net/http"

	"github.com/phenrril/shopmarket/internal/domain"
	"github.com/phenrril/shopmarket/internal/usecase"
)

type listing struct {
	Products []domain.Product     `json:"products"`
	Total    int                  `json:"total"`
	Facets   domain.Facets        `json:"facets"`
	Criteria domain.FilterCriteria `json:"criteria"`
	Query    string               `json:"query,omitempty"`
}

func (s *Server) apiHome(w http.ResponseWriter, r *http.Request) {
	featured, fresh, err := s.products.Home(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	cats, err := s.products.Categories(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"featured":     featured,
		"new_arrivals": fresh,
		"categories":   cats,
	})
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	s.list(w, r, domain.RouteContext{})
}

func (s *Server) apiGender(g domain.Gender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.list(w, r, domain.RouteContext{Gender: g})
	}
}

// list filters the catalog; facets describe the section before criteria so
// the filter sidebar keeps every option.
func (s *Server) list(w http.ResponseWriter, r *http.Request, route domain.RouteContext) {
	c, q := usecase.CriteriaFromQuery(r.URL.Query())
	all, err := s.products.All(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	ps := usecase.FilterProducts(all, c, q, route)
	base := usecase.FilterProducts(all, domain.FilterCriteria{}, "", route)
	writeJSON(w, http.StatusOK, listing{
		Products: ps,
		Total:    len(ps),
		Facets:   usecase.Facets(base),
		Criteria: c,
		Query:    q,
	})
}

func (s *Server) apiProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.GetVisible(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	related := []domain.Product{}
	for _, id := range p.RelatedProducts {
		rp, err := s.products.GetVisible(r.Context(), id)
		if err != nil {
			continue
		}
		related = append(related, *rp)
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p, "related": related})
}

func (s *Server) apiSuggestions(w http.ResponseWriter, r *http.Request) {
	out, err := s.products.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
