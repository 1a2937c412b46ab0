package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/ingestion"
	"github.com/guttosm/tradedesk/internal/middleware"
	"github.com/guttosm/tradedesk/internal/service"
	"github.com/guttosm/tradedesk/internal/storage"
)

var errInvalidAccountID = errors.New("account id must be a UUID")

// Handler provides HTTP handlers for trade import and account endpoints.
//
// Responsibilities:
//   - Validate multipart uploads, path and query parameters
//   - Delegate to the import pipeline and the account service
//   - Map domain errors onto HTTP status codes
type Handler struct {
	imports  ingestion.Service
	accounts service.AccountService
	validate *validator.Validate
}

// NewHandler constructs a new Handler instance.
func NewHandler(imports ingestion.Service, accounts service.AccountService) *Handler {
	return &Handler{imports: imports, accounts: accounts, validate: validator.New()}
}

// ImportFile godoc
// @Summary      Import one CSV into an account
// @Description  Parses a broker performance CSV, skips trades already on record and recomputes the account balance
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        account_id  formData  string  true  "Target account id (UUID)"
// @Param        file        formData  file    true  "Performance CSV"
// @Success      200  {object}  dto.ImportResponse  "Import outcome (row and batch errors included)"
// @Failure      400  {object}  dto.ErrorResponse   "Missing account id or file, or file too short"
// @Failure      404  {object}  dto.ErrorResponse   "Account not found"
// @Failure      413  {object}  dto.ErrorResponse   "Upload too large"
// @Failure      500  {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/imports [post]
func (h *Handler) ImportFile(c *gin.Context) {
	accountID := strings.TrimSpace(c.PostForm("account_id"))
	if accountID != "" {
		if _, err := uuid.Parse(accountID); err != nil {
			writeError(c, errInvalidAccountID)
			return
		}
	}

	var upload *ingestion.Upload
	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		u, err := readUpload(fh)
		if err != nil {
			writeError(c, err)
			return
		}
		upload = &u
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		writeError(c, err)
		return
	}

	resp, err := h.imports.ImportSingle(c.Request.Context(), accountID, upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportFiles godoc
// @Summary      Import CSVs matched to accounts by filename
// @Description  Each file is matched to an account by the account number in its name; unmatched files do not block the others
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "One or more performance CSVs"
// @Success      200  {object}  dto.MultiImportResponse  "Per-file outcomes and summary"
// @Failure      400  {object}  dto.ErrorResponse        "No files"
// @Failure      413  {object}  dto.ErrorResponse        "Upload too large"
// @Failure      500  {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/imports/batch [post]
func (h *Handler) ImportFiles(c *gin.Context) {
	var files []ingestion.Upload

	form, err := c.MultipartForm()
	switch {
	case err == nil:
		for _, fh := range form.File["files"] {
			u, err := readUpload(fh)
			if err != nil {
				writeError(c, err)
				return
			}
			files = append(files, u)
		}
	case errors.Is(err, http.ErrNotMultipart):
	default:
		writeError(c, err)
		return
	}

	resp, err := h.imports.ImportMany(c.Request.Context(), files)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAccount godoc
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  models.Account
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id} [get]
func (h *Handler) GetAccount(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	acc, err := h.accounts.GetAccount(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// ListTrades godoc
// @Summary      List recent trades of an account
// @Tags         accounts
// @Produce      json
// @Param        id     path      string   true   "Account id"
// @Param        limit  query     integer  false  "Max rows (default 100, max 1000)"
// @Success      200    {array}   models.Trade
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id}/trades [get]
func (h *Handler) ListTrades(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.AbortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}
	trades, err := h.accounts.ListTrades(c.Request.Context(), id, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

// ClearTrades godoc
// @Summary      Delete every trade of an account
// @Description  The balance reverts to the starting balance
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  dto.ClearTradesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id}/trades [delete]
func (h *Handler) ClearTrades(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	res, err := h.accounts.ClearTrades(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClearTradesResponse{
		AccountID:    id,
		DeletedCount: res.Deleted,
		Balance:      res.Balance,
		Equity:       res.Balance,
	})
}

// UpdateStartingBalance godoc
// @Summary      Change an account's starting balance
// @Description  Only starting_balance is read from the body; the balance is recomputed from it
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id    path      string                            true  "Account id"
// @Param        body  body      dto.UpdateStartingBalanceRequest  true  "New starting balance"
// @Success      200   {object}  models.Account
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id}/starting-balance [patch]
func (h *Handler) UpdateStartingBalance(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	var req dto.UpdateStartingBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "starting_balance is required", err)
		return
	}

	acc, err := h.accounts.UpdateStartingBalance(c.Request.Context(), id, *req.StartingBalance)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// Reconcile godoc
// @Summary      Recompute an account balance
// @Description  balance = equity = starting_balance + sum of trade P&L
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  models.Account
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id}/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	acc, err := h.accounts.Reconcile(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// Stats godoc
// @Summary      Trading statistics of an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  models.AccountStats
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/accounts/{id}/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	id, ok := accountParam(c)
	if !ok {
		return
	}
	stats, err := h.accounts.Stats(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func accountParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(c, errInvalidAccountID)
		return "", false
	}
	return id, true
}

func readUpload(fh *multipart.FileHeader) (ingestion.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return ingestion.Upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(f)
	if err != nil {
		return ingestion.Upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return ingestion.Upload{Filename: fh.Filename, Content: b}, nil
}

// writeError maps domain errors onto status codes; anything unrecognised is a 500.
func writeError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, ingestion.ErrMissingAccountID),
		errors.Is(err, ingestion.ErrMissingFile),
		errors.Is(err, ingestion.ErrNoFiles),
		errors.Is(err, ingestion.ErrFileTooShort),
		errors.Is(err, errInvalidAccountID):
		middleware.AbortWithError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, storage.ErrAccountNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "account not found", nil)
	case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
		middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "upload too large", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal error", err)
	}
}
