package api

import (
	"net/http"

	"github.com/4wadia/focusflow/internal/models"
	columnservice "github.com/4wadia/focusflow/internal/services/column"
	"github.com/labstack/echo/v4"
)

type columnHandlers struct {
	svc columnservice.Service
}

type columnBody struct {
	Title *string `json:"title"`
	Order *int    `json:"order"`
}

type columnResponse struct {
	Column *models.Column `json:"column"`
}

// list returns the owner's columns; includeTasks=true embeds each column's
// tasks, optionally limited to ?date=
func (h *columnHandlers) list(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("includeTasks") == "true" {
		board, err := h.svc.GetBoard(ctx, ownerID(c), c.QueryParam("date"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]any{"columns": board})
	}

	columns, err := h.svc.ListColumns(ctx, ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"columns": columns})
}

func (h *columnHandlers) get(c echo.Context) error {
	column, err := h.svc.GetColumn(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, columnResponse{Column: column})
}

func (h *columnHandlers) create(c echo.Context) error {
	var body columnBody
	if err := c.Bind(&body); err != nil {
		return badRequest("invalid request body")
	}

	column, err := h.svc.CreateColumn(c.Request().Context(), columnservice.CreateColumnRequest{
		OwnerID: ownerID(c),
		Title:   deref(body.Title),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, columnResponse{Column: column})
}

func (h *columnHandlers) update(c echo.Context) error {
	var body columnBody
	if err := c.Bind(&body); err != nil {
		return badRequest("invalid request body")
	}

	column, err := h.svc.UpdateColumn(c.Request().Context(), columnservice.UpdateColumnRequest{
		OwnerID:  ownerID(c),
		ColumnID: c.Param("id"),
		Title:    body.Title,
		Order:    body.Order,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, columnResponse{Column: column})
}

func (h *columnHandlers) delete(c echo.Context) error {
	if err := h.svc.DeleteColumn(c.Request().Context(), ownerID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Column and its tasks deleted"})
}
