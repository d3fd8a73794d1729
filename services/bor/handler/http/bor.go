package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/estamp/internal/utils"
	"github.com/piresc/estamp/services/bor"
)

const maxPayloadBytes = 1 << 20

var errInvalidJSON = errors.New("body is not valid JSON")

// BORHandler proxies BOR operations to authenticated clients
type BORHandler struct {
	borUC bor.BORUC
}

// NewBORHandler creates a new BOR HTTP handler
func NewBORHandler(borUC bor.BORUC) *BORHandler {
	return &BORHandler{
		borUC: borUC,
	}
}

// Instruments returns the instrument catalogue
func (h *BORHandler) Instruments(c echo.Context) error {
	result, err := h.borUC.FetchInstruments(c.Request().Context())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// DutyCalc forwards a duty calculation request
func (h *BORHandler) DutyCalc(c echo.Context) error {
	payload, err := readPayload(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	result, err := h.borUC.CalcDuty(c.Request().Context(), payload)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// Issue forwards a stamp issuance request
func (h *BORHandler) Issue(c echo.Context) error {
	payload, err := readPayload(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	result, err := h.borUC.IssueStamp(c.Request().Context(), payload)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// Verify checks a stamp by id
func (h *BORHandler) Verify(c echo.Context) error {
	result, err := h.borUC.VerifyStamp(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// readPayload returns the raw JSON body, or nil for an empty body
func readPayload(c echo.Context) (json.RawMessage, error) {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(raw), nil
}
