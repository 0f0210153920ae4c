package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/guidutra-china/Impex-project-final-sub006/internal/core/ports/services"
	"github.com/guidutra-china/Impex-project-final-sub006/internal/dto"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/:rate_id", h.getExchangeRateByID)
		rates.POST("/:rate_id/review", h.reviewExchangeRate)
		rates.POST("/refresh", h.refreshRates)
		rates.POST("/convert", h.convertAmount)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Records a manually entered rate; it stays pending until a second user approves it
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	creatorUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves rate history, newest first, optionally filtered by pair
// @Tags exchange-rates
// @Produce json
// @Param base query string false "Base currency code"
// @Param target query string false "Target currency code"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListResponse[dto.ExchangeRateResponse]
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	limit, offset := getPagination(c)

	var baseCode, targetCode *string
	if v := c.Query("base"); v != "" {
		baseCode = &v
	}
	if v := c.Query("target"); v != "" {
		targetCode = &v
	}

	rates, total, err := h.rateService.ListExchangeRates(c.Request.Context(), baseCode, targetCode, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[dto.ExchangeRateResponse]{
		Items:  dto.ToListExchangeRateResponse(rates),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// getExchangeRateByID godoc
// @Summary Get an exchange rate
// @Tags exchange-rates
// @Produce json
// @Param rate_id path string true "Exchange rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rate_id} [get]
func (h *exchangeRateHandler) getExchangeRateByID(c *gin.Context) {
	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), c.Param("rate_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// reviewExchangeRate godoc
// @Summary Review a pending exchange rate
// @Description Approves or rejects a pending rate. The creator cannot review their own rate.
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate_id path string true "Exchange rate ID"
// @Param review body dto.ReviewExchangeRateRequest true "Review decision"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/{rate_id}/review [post]
func (h *exchangeRateHandler) reviewExchangeRate(c *gin.Context) {
	reviewerUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.ReviewExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.ReviewExchangeRate(c.Request.Context(), c.Param("rate_id"), req.Approve, reviewerUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// refreshRates godoc
// @Summary Refresh rates from the external provider
// @Description Pulls current rates from the configured provider and stores them as approved api-sourced rows
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	requestingUserID, ok := requireUserID(c)
	if !ok {
		return
	}
	stored, err := h.rateService.RefreshRatesFromProvider(c.Request.Context(), requestingUserID)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Failed to refresh rates: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stored": stored})
}

// convertAmount godoc
// @Summary Convert a minor-units amount between currencies
// @Description Resolves the effective rate (direct, inverse or triangulated through the base currency) and converts with half-up rounding
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param conversion body dto.ConvertAmountRequest true "Conversion request"
// @Success 200 {object} dto.ConvertAmountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "No conversion path exists"
// @Security BearerAuth
// @Router /exchange-rates/convert [post]
func (h *exchangeRateHandler) convertAmount(c *gin.Context) {
	var req dto.ConvertAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	onDate := time.Now()
	if req.Date != nil {
		onDate = *req.Date
	}

	result, err := h.rateService.ConvertAmount(c.Request.Context(), req.FromCurrencyCode, req.ToCurrencyCode, req.AmountMinorUnits, onDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConvertAmountResponse{
		FromCurrencyCode:          req.FromCurrencyCode,
		ToCurrencyCode:            req.ToCurrencyCode,
		AmountMinorUnits:          req.AmountMinorUnits,
		ConvertedAmountMinorUnits: result.ConvertedAmountMinorUnits,
		ConvertedAmountFormatted:  result.ConvertedAmountFormatted,
		Rate:                      result.Rate,
		RateDate:                  result.RateDate,
	})
}
