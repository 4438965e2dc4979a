package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smartrx/smartrx/internal/drugsapi/domain"
	"github.com/smartrx/smartrx/internal/web/apiclient"
)

type drugsIndexData struct {
	Query string
	Drugs []domain.Drug
}

type drugFormData struct {
	Title             string
	Action            string
	BrandName         string
	Manufacturer      string
	Ingredients       string
	DosageInstruction string
	ManufacturedDate  string
	ExpiryDate        string
	Price             string
}

type errorData struct {
	Message string
}

const dateLayout = "2006-01-02"

func (h *Handler) drugsIndex(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	drugs, err := h.drugs.List(r.Context(), identity.Token)
	if err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	h.renderer.render(w, http.StatusOK, "drugs_index.html", viewData{
		Identity: identity,
		Data:     drugsIndexData{Drugs: drugs},
	})
}

func (h *Handler) drugsSearch(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	query := r.URL.Query().Get("query")
	drugs, err := h.drugs.Search(r.Context(), identity.Token, query)
	if err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	h.renderer.render(w, http.StatusOK, "drugs_index.html", viewData{
		Identity: identity,
		Data:     drugsIndexData{Query: query, Drugs: drugs},
	})
}

func (h *Handler) drugDetails(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}
	drug, err := h.drugs.Get(r.Context(), identity.Token, id)
	if err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	h.renderer.render(w, http.StatusOK, "drug_details.html", viewData{
		Identity: identity,
		Data:     drug,
	})
}

func (h *Handler) drugCreatePage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, "drug_form.html", viewData{
		Identity: identityFromContext(r.Context()),
		Data: drugFormData{
			Title:  "Add drug",
			Action: "/drugs/create",
		},
	})
}

func (h *Handler) drugCreate(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	form, drug, err := parseDrugForm(r)
	if err != nil {
		form.Title = "Add drug"
		form.Action = "/drugs/create"
		h.renderer.render(w, http.StatusBadRequest, "drug_form.html", viewData{
			Identity: identity,
			Error:    err.Error(),
			Data:     form,
		})
		return
	}
	if _, err := h.drugs.Create(r.Context(), identity.Token, drug); err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/drugs", http.StatusSeeOther)
}

func (h *Handler) drugEditPage(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}
	drug, err := h.drugs.Get(r.Context(), identity.Token, id)
	if err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	h.renderer.render(w, http.StatusOK, "drug_form.html", viewData{
		Identity: identity,
		Data: drugFormData{
			Title:             "Edit " + drug.BrandName,
			Action:            fmt.Sprintf("/drugs/%d/edit", drug.ID),
			BrandName:         drug.BrandName,
			Manufacturer:      drug.Manufacturer,
			Ingredients:       strings.Join(drug.Ingredients, ", "),
			DosageInstruction: drug.DosageInstruction,
			ManufacturedDate:  drug.ManufacturedDate.Format(dateLayout),
			ExpiryDate:        drug.ExpiryDate.Format(dateLayout),
			Price:             strconv.FormatFloat(drug.Price, 'f', 2, 64),
		},
	})
}

func (h *Handler) drugEdit(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}
	form, drug, err := parseDrugForm(r)
	if err != nil {
		form.Title = "Edit drug"
		form.Action = fmt.Sprintf("/drugs/%d/edit", id)
		h.renderer.render(w, http.StatusBadRequest, "drug_form.html", viewData{
			Identity: identity,
			Error:    err.Error(),
			Data:     form,
		})
		return
	}
	drug.ID = id
	if err := h.drugs.Update(r.Context(), identity.Token, drug); err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/drugs", http.StatusSeeOther)
}

func (h *Handler) drugDelete(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.renderNotFound(w, r)
		return
	}
	if err := h.drugs.Delete(r.Context(), identity.Token, id); err != nil {
		h.renderAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/drugs", http.StatusSeeOther)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseDrugForm returns both the echo-back form data and the parsed drug so
// validation failures re-render the user's input untouched.
func parseDrugForm(r *http.Request) (drugFormData, domain.Drug, error) {
	if err := r.ParseForm(); err != nil {
		return drugFormData{}, domain.Drug{}, errors.New("invalid form submission")
	}
	form := drugFormData{
		BrandName:         strings.TrimSpace(r.PostFormValue("brandName")),
		Manufacturer:      strings.TrimSpace(r.PostFormValue("manufacturer")),
		Ingredients:       r.PostFormValue("ingredients"),
		DosageInstruction: r.PostFormValue("dosageInstruction"),
		ManufacturedDate:  r.PostFormValue("manufacturedDate"),
		ExpiryDate:        r.PostFormValue("expiryDate"),
		Price:             r.PostFormValue("price"),
	}

	if form.BrandName == "" || form.Manufacturer == "" {
		return form, domain.Drug{}, errors.New("brand name and manufacturer are required")
	}

	drug := domain.Drug{
		BrandName:         form.BrandName,
		Manufacturer:      form.Manufacturer,
		DosageInstruction: form.DosageInstruction,
	}
	for _, part := range strings.Split(form.Ingredients, ",") {
		if part = strings.TrimSpace(part); part != "" {
			drug.Ingredients = append(drug.Ingredients, part)
		}
	}
	if form.ManufacturedDate != "" {
		t, err := time.Parse(dateLayout, form.ManufacturedDate)
		if err != nil {
			return form, domain.Drug{}, errors.New("manufactured date must be YYYY-MM-DD")
		}
		drug.ManufacturedDate = t
	}
	if form.ExpiryDate != "" {
		t, err := time.Parse(dateLayout, form.ExpiryDate)
		if err != nil {
			return form, domain.Drug{}, errors.New("expiry date must be YYYY-MM-DD")
		}
		drug.ExpiryDate = t
	}
	if form.Price != "" {
		p, err := strconv.ParseFloat(form.Price, 64)
		if err != nil || p < 0 {
			return form, domain.Drug{}, errors.New("price must be a non-negative number")
		}
		drug.Price = p
	}
	return form, drug, nil
}

// renderAPIError maps a drugs-service failure onto a page. A 401 means the
// session's token went stale between requests: drop the session and start
// over at login.
func (h *Handler) renderAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apiclient.ErrUnauthenticated):
		if cookie, cerr := r.Cookie(sessionCookie); cerr == nil {
			_ = h.sessions.Delete(r.Context(), cookie.Value)
		}
		h.clearSessionCookie(w)
		http.Redirect(w, r, "/account/login", http.StatusSeeOther)
	case errors.Is(err, apiclient.ErrForbidden):
		h.renderer.render(w, http.StatusForbidden, "error.html", viewData{
			Identity: identityFromContext(r.Context()),
			Data:     errorData{Message: "You do not have permission to do that."},
		})
	case errors.Is(err, apiclient.ErrNotFound):
		h.renderNotFound(w, r)
	case errors.Is(err, apiclient.ErrInvalidInput):
		h.renderer.render(w, http.StatusBadRequest, "error.html", viewData{
			Identity: identityFromContext(r.Context()),
			Data:     errorData{Message: "The drug data was rejected. Check the form values."},
		})
	default:
		webLogger().ErrorContext(r.Context(), "drugs call failed", "error", err.Error())
		h.renderer.render(w, http.StatusBadGateway, "error.html", viewData{
			Identity: identityFromContext(r.Context()),
			Data:     errorData{Message: "The drug catalog is unavailable right now."},
		})
	}
}

func (h *Handler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusNotFound, "error.html", viewData{
		Identity: identityFromContext(r.Context()),
		Data:     errorData{Message: "That drug does not exist."},
	})
}
