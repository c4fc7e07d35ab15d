package httpserver

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phenrril/shopmarket/internal/adapters/spreadsheet"
	"github.com/phenrril/shopmarket/internal/domain"
	"github.com/phenrril/shopmarket/internal/usecase"
)

const maxImportBytes = 25 << 20

func (s *Server) apiAdminProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ps, err := s.products.AdminSearch(r.Context(), q.Get("q"), q.Get("visibility"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": ps, "total": len(ps)})
}

func (s *Server) apiAdminProductCreate(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := s.products.Create(r.Context(), &p); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) apiAdminProductUpdate(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	if err := s.products.Update(r.Context(), r.PathValue("id"), &p); err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiAdminProductDelete(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err := s.products.Delete(r.Context(), r.PathValue("id"), confirmed); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiAdminProductVisibility(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.ToggleVisibility(r.Context(), r.PathValue("id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// apiAdminExport streams the whole catalog as xlsx, or csv with format=csv.
func (s *Server) apiAdminExport(w http.ResponseWriter, r *http.Request) {
	ps, err := s.products.All(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	stamp := time.Now().Format("20060102")
	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="products-%s.csv"`, stamp))
		if err := spreadsheet.WriteCSV(w, ps); err != nil {
			writeErr(w, r, err)
		}
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="products-%s.xlsx"`, stamp))
	if err := spreadsheet.WriteXLSX(w, ps); err != nil {
		writeErr(w, r, err)
	}
}

// apiAdminImport upserts products from a multipart "file" upload. The file
// extension picks the reader.
func (s *Server) apiAdminImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeError(w, http.StatusBadRequest, "multipart")
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer f.Close()

	var ps []domain.Product
	switch strings.ToLower(filepath.Ext(hdr.Filename)) {
	case ".csv":
		ps, err = spreadsheet.ReadCSV(f)
	case ".xlsx":
		ps, err = spreadsheet.ReadXLSX(f)
	default:
		writeError(w, http.StatusBadRequest, "file must be .xlsx or .csv")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, updated, err := s.products.Import(r.Context(), ps)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created, "updated": updated})
}

func (s *Server) apiAdminStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.stats.Dashboard(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) apiAdminUsers(w http.ResponseWriter, r *http.Request) {
	us, err := s.users.List(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, us)
}

func (s *Server) apiAdminUserPatch(w http.ResponseWriter, r *http.Request) {
	var p usecase.UserPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	u, err := s.users.Patch(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) apiAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	to, ok := parseStatus(w, r)
	if !ok {
		return
	}
	o, err := s.orders.UpdateStatusAny(r.Context(), r.PathValue("id"), to)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
