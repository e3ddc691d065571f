package catalog

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/frontdesk/frontdesk/internal/domain/dose"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
	"github.com/frontdesk/frontdesk/internal/platform/session"
)

type Handler struct {
	svc    *Service
	drafts *DraftStore
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, drafts: NewDraftStore()}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	staff := api.Group("", session.RequireRole(session.RoleDoctor, session.RoleReceptionist))

	staff.GET("/medicines", h.ListMedicines)
	staff.GET("/medicines/grouped", h.GroupedMedicines)
	staff.GET("/medicines/diseases", h.ListDiseases)
	staff.POST("/medicines/add", h.AddBatch)
	staff.PUT("/medicines/:id", h.UpdateMedicine)
	staff.DELETE("/medicines/:id", h.DeleteMedicine)

	staff.POST("/medicine-drafts", h.CreateDraft)
	staff.GET("/medicine-drafts/:id", h.GetDraft)
	staff.POST("/medicine-drafts/:id/rows", h.AddDraftRow)
	staff.DELETE("/medicine-drafts/:id/rows/:index", h.RemoveDraftRow)
	staff.PUT("/medicine-drafts/:id/rows/:index", h.UpdateDraftRow)
	staff.PUT("/medicine-drafts/:id/rows/:index/dose", h.SetDraftDose)
	staff.POST("/medicine-drafts/:id/submit", h.SubmitDraft)
}

// ListMedicines returns the catalog, optionally filtered by ?disease=
// (matched case-insensitively).
func (h *Handler) ListMedicines(c echo.Context) error {
	ctx := c.Request().Context()
	if disease := c.QueryParam("disease"); disease != "" {
		entries, err := h.svc.ByDisease(ctx, disease)
		if err != nil {
			return httperr.Translate(err)
		}
		return c.JSON(http.StatusOK, entries)
	}

	entries, err := h.svc.List(ctx)
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) GroupedMedicines(c echo.Context) error {
	grouped, err := h.svc.Grouped(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, grouped)
}

func (h *Handler) ListDiseases(c echo.Context) error {
	diseases, err := h.svc.Diseases(c.Request().Context())
	if err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, diseases)
}

type batchRequest struct {
	Disease   string  `json:"disease" validate:"required"`
	Medicines []Entry `json:"medicines" validate:"required,min=1"`
}

// AddBatch persists a whole batch of entries sharing one disease name.
func (h *Handler) AddBatch(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.svc.SubmitBatch(c.Request().Context(), req.Disease, req.Medicines); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusCreated)
}

func (h *Handler) UpdateMedicine(c echo.Context) error {
	var e Entry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	e.ID = c.Param("id")

	if err := h.svc.Update(c.Request().Context(), e); err != nil {
		return httperr.Translate(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteMedicine(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.Translate(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Draft workflow --

func (h *Handler) CreateDraft(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.drafts.Create())
}

func (h *Handler) GetDraft(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) AddDraftRow(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	d.AddRow()
	return c.JSON(http.StatusOK, d)
}

// RemoveDraftRow deletes one row. Removing the last remaining row is refused
// by the draft itself; the response carries the unchanged draft.
func (h *Handler) RemoveDraftRow(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}
	d.RemoveRow(i)
	return c.JSON(http.StatusOK, d)
}

type draftRowRequest struct {
	MedicineName *string `json:"medicineName"`
	MedicineType *string `json:"medicineType"`
	Days         *int    `json:"days"`
}

func (h *Handler) UpdateDraftRow(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= len(d.Rows) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}

	var req draftRowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.MedicineName != nil {
		d.Rows[i].MedicineName = *req.MedicineName
	}
	if req.MedicineType != nil {
		d.Rows[i].MedicineType = *req.MedicineType
	}
	if req.Days != nil {
		d.Rows[i].Days = *req.Days
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) SetDraftDose(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= len(d.Rows) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid row index")
	}

	var action dose.Action
	if err := c.Bind(&action); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, err := action.Apply(d.Rows[i].Dose)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.Rows[i].Dose = updated
	return c.JSON(http.StatusOK, d)
}

type draftSubmitRequest struct {
	Disease string `json:"disease"`
}

// SubmitDraft validates and persists the draft as one batch. On success the
// draft resets to a single empty row; on failure it is preserved unchanged.
func (h *Handler) SubmitDraft(c echo.Context) error {
	d := h.drafts.Get(c.Param("id"))
	if d == nil {
		return echo.NewHTTPError(http.StatusNotFound, "draft not found")
	}

	var req draftSubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.SubmitBatch(c.Request().Context(), req.Disease, d.Rows); err != nil {
		return httperr.Translate(err)
	}

	d.Reset()
	return c.JSON(http.StatusCreated, d)
}
