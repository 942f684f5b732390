package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sahne-client/constants"
	"sahne-client/mockdata"
	"sahne-client/models"
	"sahne-client/utils"
)

// ChefHandler gère le catalogue des chefs
type ChefHandler struct {
	store *mockdata.Store
}

// NewChefHandler crée une nouvelle instance de ChefHandler
func NewChefHandler(store *mockdata.Store) *ChefHandler {
	return &ChefHandler{store: store}
}

// List retourne une page de chefs filtrés {data, meta}
func (h *ChefHandler) List(w http.ResponseWriter, r *http.Request) {
	query, fields := parseChefQuery(r.URL.Query())
	if !fields.Empty() {
		utils.RespondValidationError(w, fields)
		return
	}

	chefs, meta, err := h.store.ListChefs(r.Context(), query)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ChefListResponse{Data: chefs, Meta: meta})
}

// Show retourne le profil détaillé d'un chef {data}
func (h *ChefHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseIDVar(w, r, "id", constants.ErrChefNotFound)
	if !ok {
		return
	}

	profile, err := h.store.ChefProfile(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ChefProfileResponse{Data: profile})
}

// Search recherche des chefs par texte libre {chefs}
func (h *ChefHandler) Search(w http.ResponseWriter, r *http.Request) {
	chefs, err := h.store.SearchChefs(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ChefSearchResponse{Chefs: chefs})
}

// Reviews retourne les avis publiés sur un chef {reviews}
func (h *ChefHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseIDVar(w, r, "id", constants.ErrChefNotFound)
	if !ok {
		return
	}

	reviews, err := h.store.ChefReviews(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, models.ReviewListResponse{Reviews: reviews})
}

// parseChefQuery lit les filtres de GET /chefs ; un nombre illisible est une erreur de champ
func parseChefQuery(values url.Values) (mockdata.ChefQuery, utils.FieldErrors) {
	fields := utils.FieldErrors{}
	number := func(key string) *float64 {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields.Set(key, constants.ErrInvalidData)
			return nil
		}
		return &v
	}

	query := mockdata.ChefQuery{
		Search:      values.Get("search"),
		MinPrice:    number("min_price"),
		MaxPrice:    number("max_price"),
		MinRating:   number("min_rating"),
		Specialties: values["specialties[]"],
	}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			fields.Set("page", constants.ErrInvalidData)
		}
		query.Page = page
	}
	return query, fields
}
