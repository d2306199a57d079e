package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"productos-api/internal/domain"
	"productos-api/internal/usecase"
	"productos-api/pkg/logger"
	"productos-api/pkg/utils"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

type ProductHandler struct {
	catalogUC       *usecase.CatalogUsecase
	defaultPageSize int
}

func NewProductHandler(uc *usecase.CatalogUsecase, defaultPageSize int) *ProductHandler {
	return &ProductHandler{catalogUC: uc, defaultPageSize: defaultPageSize}
}

// decodeBody decodes a JSON object into dst. It reports false for a missing,
// empty or null body.
func decodeBody(r *http.Request, dst interface{}) (bool, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return false, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return true, err
	}
	return true, nil
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, errPage := utils.ParseInt(query.Get("page"), 1)
	pageSize, errSize := utils.ParseInt(query.Get("page_size"), h.defaultPageSize)
	minPrice, errMin := utils.ParseOptionalFloat(query.Get("min_price"))
	maxPrice, errMax := utils.ParseOptionalFloat(query.Get("max_price"))
	if err := errors.Join(errPage, errSize, errMin, errMax); err != nil {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("invalid search parameters")
		utils.WriteError(w, http.StatusBadRequest, domain.MsgInvalidPagination)
		return
	}

	result, err := h.catalogUC.Search(r.Context(), domain.SearchQuery{
		Category: query.Get("category"),
		Keyword:  query.Get("keyword"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Page:     page,
		PageSize: pageSize,
	})
	if errors.Is(err, domain.ErrValidation) {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("invalid search parameters")
		utils.WriteError(w, http.StatusBadRequest, domain.MsgInvalidPagination)
		return
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("search failed")
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(r.PathValue("id"))
	if !ok {
		utils.WriteFailure(w, http.StatusNotFound, domain.MsgNotFound)
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteFailure(w, http.StatusNotFound, domain.MsgNotFound)
		return
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Int64("product_id", id).Msg("get product failed")
		utils.WriteFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{Exito: true, Datos: product})
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	present, err := decodeBody(r, &req)
	if err != nil {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("invalid product body")
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgInvalidBody)
		return
	}
	if !present {
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgMissingFields)
		return
	}

	created, err := h.catalogUC.CreateProduct(r.Context(), req)
	if errors.Is(err, domain.ErrValidation) {
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgMissingFields)
		return
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("create product failed")
		utils.WriteFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, domain.MsgCreated, created)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(r.PathValue("id"))
	if !ok {
		utils.WriteFailure(w, http.StatusNotFound, domain.MsgNotFound)
		return
	}

	var req domain.UpdateProductRequest
	present, err := decodeBody(r, &req)
	if err != nil {
		logger.WithContext(r.Context()).Debug().Err(err).Msg("invalid product body")
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgInvalidBody)
		return
	}
	if !present {
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgNoUpdateData)
		return
	}

	updated, err := h.catalogUC.UpdateProduct(r.Context(), id, req)
	switch {
	case errors.Is(err, domain.ErrValidation):
		utils.WriteFailure(w, http.StatusBadRequest, domain.MsgNoUpdateData)
		return
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteFailure(w, http.StatusNotFound, domain.MsgNotFound)
		return
	case err != nil:
		logger.WithContext(r.Context()).Error().Err(err).Int64("product_id", id).Msg("update product failed")
		utils.WriteFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteSuccess(w, http.StatusOK, domain.MsgUpdated, updated)
}

// DeleteProduct answers 200 whether or not the product existed.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(r.PathValue("id"))
	if !ok {
		utils.WriteFailure(w, http.StatusNotFound, domain.MsgNotFound)
		return
	}

	if err := h.catalogUC.DeleteProduct(r.Context(), id); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Int64("product_id", id).Msg("delete product failed")
		utils.WriteFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.WriteSuccess(w, http.StatusOK, domain.MsgDeleted, nil)
}
